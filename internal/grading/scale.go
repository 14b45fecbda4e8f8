package grading

// Thresholds 评分等级的四段阈值，升序排列时映射才有意义。
// 0 分为隐含下限：低于 T2 的分数一律记 1 等。
type Thresholds struct {
	T2 int
	T3 int
	T4 int
	T5 int
}

// Mark 把原始分映射为 1-5 等级
func Mark(t Thresholds, score int) int {
	switch {
	case score >= t.T5:
		return 5
	case score >= t.T4:
		return 4
	case score >= t.T3:
		return 3
	case score >= t.T2:
		return 2
	}
	return 1
}
