package service

import (
	"sort"
	"sync"

	"homework_backend/internal/config"
	"homework_backend/internal/grading"
)

// DemoService 免登录的体验作业。题目来自配置文件，支持热更新。
type DemoService struct {
	mu        sync.RWMutex
	questions []config.DemoQuestion
}

func NewDemoService(cfg *config.Config) *DemoService {
	s := &DemoService{}
	s.Reload(cfg)
	return s
}

// Reload 配置变更时替换题目集，进行中的判分拿旧快照跑完
func (s *DemoService) Reload(cfg *config.Config) {
	questions := make([]config.DemoQuestion, 0, len(cfg.Demo.Questions))
	for _, q := range cfg.Demo.Questions {
		if q.Number > 0 && grading.ValidFormat(grading.Format(q.Format)) {
			questions = append(questions, q)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Number < questions[j].Number
	})

	s.mu.Lock()
	s.questions = questions
	s.mu.Unlock()
}

// Questions 返回展示用题目，不含答案
func (s *DemoService) Questions() []config.DemoQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]config.DemoQuestion, len(s.questions))
	copy(out, s.questions)
	return out
}

type DemoResult struct {
	Score    int `json:"score"`
	MaxScore int `json:"maxScore"`
}

// Check 判分体验作业，结果不落库
func (s *DemoService) Check(answers map[string]string) DemoResult {
	s.mu.RLock()
	snapshot := s.questions
	s.mu.RUnlock()

	questions := make([]grading.Question, len(snapshot))
	answerKey := make(map[string]string, len(snapshot))
	for i, q := range snapshot {
		questions[i] = grading.Question{Number: q.Number, Format: grading.Format(q.Format)}
		answerKey[grading.Key(q.Number)] = q.Answer
	}

	score := grading.Score(questions, answerKey, canonicalAnswers(answers))
	return DemoResult{Score: score, MaxScore: len(questions)}
}
