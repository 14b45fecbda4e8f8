package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homework_backend/internal/grading"
	"homework_backend/internal/repository"
	"homework_backend/internal/util"
	"homework_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const reportCacheTTL = 5 * time.Minute

// ReportService 成绩报表。Redis 不可用时直接落库查询，缓存只是加速。
type ReportService struct {
	SubmissionRepo *repository.SubmissionRepository
	HomeworkRepo   *repository.HomeworkRepository
	ClassroomRepo  *repository.ClassroomRepository
	ProfileRepo    *repository.ProfileRepository
	ScaleRepo      *repository.GradeScaleRepository
	Redis          *redis.Client
}

func NewReportService(submissionRepo *repository.SubmissionRepository, homeworkRepo *repository.HomeworkRepository, classroomRepo *repository.ClassroomRepository, profileRepo *repository.ProfileRepository, scaleRepo *repository.GradeScaleRepository, rdb *redis.Client) *ReportService {
	return &ReportService{
		SubmissionRepo: submissionRepo,
		HomeworkRepo:   homeworkRepo,
		ClassroomRepo:  classroomRepo,
		ProfileRepo:    profileRepo,
		ScaleRepo:      scaleRepo,
		Redis:          rdb,
	}
}

// ProgressPoint 学生成绩曲线上的一个点，按作业截止日期排列
type ProgressPoint struct {
	TemplateID uint      `json:"templateId"`
	Title      string    `json:"title"`
	Deadline   time.Time `json:"deadline"`
	AutoScore  int       `json:"autoScore"`
	FinalScore int       `json:"finalScore"`
	MaxScore   int       `json:"maxScore"`
	Grade      *int      `json:"grade,omitempty"`
	Graded     bool      `json:"graded"`
}

type StudentProgress struct {
	StudentID uint            `json:"studentId"`
	Points    []ProgressPoint `json:"points"`
}

// GetStudentProgress 学生成绩曲线数据。未批改的提交也进曲线，等级临时按量表折算。
func (s *ReportService) GetStudentProgress(ctx context.Context, studentID uint) (*StudentProgress, error) {
	cacheKey := fmt.Sprintf("report:student:%d", studentID)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		var progress StudentProgress
		if err := json.Unmarshal(cached, &progress); err == nil {
			return &progress, nil
		}
	}

	submissions, err := s.SubmissionRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	points := make([]ProgressPoint, 0, len(submissions))
	for _, sub := range submissions {
		template, err := s.HomeworkRepo.FindByID(sub.TemplateID)
		if err != nil {
			continue
		}
		point := ProgressPoint{
			TemplateID: template.ID,
			Title:      template.Title,
			Deadline:   template.Deadline,
			AutoScore:  sub.AutoScore,
			FinalScore: sub.FinalScore,
			MaxScore:   template.MaxScore,
			Grade:      sub.Grade,
			Graded:     sub.Graded,
		}
		if point.Grade == nil {
			if scale, err := s.ScaleRepo.FindByID(template.GradeScaleID); err == nil {
				g := grading.Mark(Thresholds(scale), sub.FinalScore)
				point.Grade = &g
			}
		}
		points = append(points, point)
	}

	progress := &StudentProgress{StudentID: studentID, Points: points}
	s.toCache(ctx, cacheKey, progress)
	return progress, nil
}

// TemplateReport 老师侧单次作业的汇总行
type TemplateReport struct {
	TemplateID   uint      `json:"templateId"`
	Title        string    `json:"title"`
	Deadline     time.Time `json:"deadline"`
	MaxScore     int       `json:"maxScore"`
	RosterSize   int       `json:"rosterSize"`
	Submitted    int64     `json:"submitted"`
	Graded       int64     `json:"graded"`
	AverageScore float64   `json:"averageScore"`
}

type ClassroomStats struct {
	ClassroomID uint             `json:"classroomId"`
	Name        string           `json:"name"`
	Templates   []TemplateReport `json:"templates"`
}

// GetClassroomStats 教师查看班级全部作业的提交与均分汇总
func (s *ReportService) GetClassroomStats(ctx context.Context, teacherID, classroomID uint, isAdmin bool) (*ClassroomStats, error) {
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return nil, util.ErrClassroomNotFound
	}
	if !isAdmin && classroom.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	cacheKey := fmt.Sprintf("report:classroom:%d", classroomID)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		var stats ClassroomStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	roster, err := s.ProfileRepo.FindRoster(classroomID)
	if err != nil {
		return nil, err
	}
	templates, err := s.HomeworkRepo.FindByClassroom(classroomID)
	if err != nil {
		return nil, err
	}

	reports := make([]TemplateReport, 0, len(templates))
	for _, t := range templates {
		stats, err := s.SubmissionRepo.StatsByTemplate(t.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, TemplateReport{
			TemplateID:   t.ID,
			Title:        t.Title,
			Deadline:     t.Deadline,
			MaxScore:     t.MaxScore,
			RosterSize:   len(roster),
			Submitted:    stats.Submitted,
			Graded:       stats.Graded,
			AverageScore: stats.AverageScore,
		})
	}

	result := &ClassroomStats{ClassroomID: classroom.ID, Name: classroom.Name, Templates: reports}
	s.toCache(ctx, cacheKey, result)
	return result, nil
}

// InvalidateStudent 学生重新提交后清掉对应缓存
func (s *ReportService) InvalidateStudent(ctx context.Context, studentID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, fmt.Sprintf("report:student:%d", studentID))
}

func (s *ReportService) fromCache(ctx context.Context, key string) []byte {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (s *ReportService) toCache(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache report", zap.String("key", key), zap.Error(err))
	}
}
