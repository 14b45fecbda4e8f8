package grading

import (
	"math"
	"strconv"
	"strings"
)

// Format 题目答案格式
type Format string

const (
	FormatText    Format = "text"
	FormatInteger Format = "integer"
	FormatFloat   Format = "float"
)

// floatTolerance 浮点题比对的绝对误差
const floatTolerance = 1e-6

// Question 学生可见的题目结构（不含标准答案）
type Question struct {
	Number int    `json:"number"`
	Format Format `json:"format"`
}

func ValidFormat(f Format) bool {
	switch f {
	case FormatText, FormatInteger, FormatFloat:
		return true
	}
	return false
}

// Key 题号（字符串形式）到标准答案的映射，题号统一用 strconv.Itoa(number) 作键
func Key(number int) string {
	return strconv.Itoa(number)
}

// Score 自动评分：逐题按格式比对，返回答对题数。
// 纯函数，结果只由入参决定，与 map 的遍历顺序无关。
// 学生未作答的题目按空串处理；解析失败一律算答错，不报错。
func Score(questions []Question, answerKey map[string]string, answers map[string]string) int {
	score := 0
	for _, q := range questions {
		k := Key(q.Number)
		if Correct(q.Format, answerKey[k], answers[k]) {
			score++
		}
	}
	return score
}

// Correct 按格式比对单题答案
func Correct(format Format, expected, submitted string) bool {
	switch format {
	case FormatText:
		return textEqual(expected, submitted)
	case FormatInteger:
		return integerEqual(expected, submitted)
	case FormatFloat:
		return floatEqual(expected, submitted)
	}
	return false
}

// 文本题：去首尾空白后忽略大小写比对（Unicode 折叠，不依赖 locale）
func textEqual(expected, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(submitted))
}

// 整数题：两边都能解析为整数且相等才算对
func integerEqual(expected, submitted string) bool {
	e, err := strconv.Atoi(strings.TrimSpace(expected))
	if err != nil {
		return false
	}
	s, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return false
	}
	return e == s
}

// 浮点题：小数点兼容逗号写法，误差不超过 floatTolerance 算对
func floatEqual(expected, submitted string) bool {
	e, ok := parseDecimal(expected)
	if !ok {
		return false
	}
	s, ok := parseDecimal(submitted)
	if !ok {
		return false
	}
	return math.Abs(e-s) <= floatTolerance
}

func parseDecimal(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
