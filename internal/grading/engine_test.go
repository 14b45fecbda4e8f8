package grading

import "testing"

func TestCorrectText(t *testing.T) {
	cases := []struct {
		expected  string
		submitted string
		want      bool
	}{
		{"Paris", "paris", true},
		{"Paris", "  PARIS  ", true},
		{"Paris", "London", false},
		{"", "", true},
		{"Paris", "", false},
		{"", "Paris", false},
	}
	for _, c := range cases {
		if got := Correct(FormatText, c.expected, c.submitted); got != c.want {
			t.Errorf("text %q vs %q: got %v, want %v", c.expected, c.submitted, got, c.want)
		}
	}
}

func TestCorrectInteger(t *testing.T) {
	cases := []struct {
		expected  string
		submitted string
		want      bool
	}{
		{"7", "7", true},
		{"7", " 7 ", true},
		{"42", "43", false},
		{"42", "forty-two", false},
		{"forty-two", "42", false},
		{"42", "", false},
	}
	for _, c := range cases {
		if got := Correct(FormatInteger, c.expected, c.submitted); got != c.want {
			t.Errorf("integer %q vs %q: got %v, want %v", c.expected, c.submitted, got, c.want)
		}
	}
}

func TestCorrectFloat(t *testing.T) {
	cases := []struct {
		expected  string
		submitted string
		want      bool
	}{
		{"3.14", "3,14", true},
		{"3,14", "3.14", true},
		{"3.14", "3.14", true},
		// 绝对误差 1e-6：2e-6 超出，5e-7 在容差内
		{"3.14", "3.140002", false},
		{"3.14", "3.1400005", true},
		{"3.14", "3.20", false},
		{"3.14", "pi", false},
		{"3.14", "", false},
	}
	for _, c := range cases {
		if got := Correct(FormatFloat, c.expected, c.submitted); got != c.want {
			t.Errorf("float %q vs %q: got %v, want %v", c.expected, c.submitted, got, c.want)
		}
	}
}

var demoQuestions = []Question{
	{Number: 1, Format: FormatText},
	{Number: 2, Format: FormatInteger},
	{Number: 3, Format: FormatFloat},
}

var demoKey = map[string]string{"1": "Paris", "2": "42", "3": "3.14"}

func TestScoreAllCorrect(t *testing.T) {
	answers := map[string]string{"1": "paris", "2": "42", "3": "3,14"}
	if got := Score(demoQuestions, demoKey, answers); got != 3 {
		t.Fatalf("score = %d, want 3", got)
	}
}

func TestScoreAllWrong(t *testing.T) {
	// 文本不匹配、整数解析失败、浮点超出容差：都记错，不得报错
	answers := map[string]string{"1": "London", "2": "forty-two", "3": "3.20"}
	if got := Score(demoQuestions, demoKey, answers); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestScoreMissingAnswers(t *testing.T) {
	if got := Score(demoQuestions, demoKey, map[string]string{"2": "42"}); got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}
	if got := Score(demoQuestions, demoKey, nil); got != 0 {
		t.Fatalf("score with nil answers = %d, want 0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	answers := map[string]string{"3": "3.14", "1": "PARIS", "2": " 42"}
	for i := 0; i < 50; i++ {
		if got := Score(demoQuestions, demoKey, answers); got != 3 {
			t.Fatalf("iteration %d: score = %d, want 3", i, got)
		}
	}
}
