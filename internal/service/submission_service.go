package service

import (
	"encoding/json"
	"strconv"
	"time"

	"homework_backend/internal/grading"
	"homework_backend/internal/model"
	"homework_backend/internal/repository"
	"homework_backend/internal/util"
	"homework_backend/pkg/monitoring"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	HomeworkRepo   *repository.HomeworkRepository
	ClassroomRepo  *repository.ClassroomRepository
	ProfileRepo    *repository.ProfileRepository
	ScaleRepo      *repository.GradeScaleRepository
}

func NewSubmissionService(submissionRepo *repository.SubmissionRepository, homeworkRepo *repository.HomeworkRepository, classroomRepo *repository.ClassroomRepository, profileRepo *repository.ProfileRepository, scaleRepo *repository.GradeScaleRepository) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		HomeworkRepo:   homeworkRepo,
		ClassroomRepo:  classroomRepo,
		ProfileRepo:    profileRepo,
		ScaleRepo:      scaleRepo,
	}
}

type SubmitReq struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// Submit 学生提交答卷，自动判分。重复提交覆盖旧答卷并清除教师批改结果。
func (s *SubmissionService) Submit(studentID, templateID uint, req SubmitReq) (*model.StudentSubmission, error) {
	template, err := s.HomeworkRepo.FindByID(templateID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}

	profile, err := s.ProfileRepo.FindByUserID(studentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if profile.ClassroomID == nil || *profile.ClassroomID != template.ClassroomID {
		return nil, util.ErrNotInClassroom
	}

	questions, answerKey, err := decodeTemplate(template)
	if err != nil {
		return nil, err
	}

	answers := canonicalAnswers(req.Answers)
	autoScore := grading.Score(questions, answerKey, answers)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission, err := s.SubmissionRepo.FindByStudentAndTemplate(studentID, templateID)
	if err == nil {
		// 重新提交：覆盖答案，作废之前的批改
		submission.Answers = answersJSON
		submission.AutoScore = autoScore
		submission.FinalScore = autoScore
		submission.Graded = false
		submission.Grade = nil
		submission.TeacherComment = ""
		submission.SubmittedAt = now
		if err := s.SubmissionRepo.Save(submission); err != nil {
			return nil, err
		}
	} else {
		submission = &model.StudentSubmission{
			StudentID:   studentID,
			TemplateID:  templateID,
			Answers:     answersJSON,
			AutoScore:   autoScore,
			FinalScore:  autoScore,
			SubmittedAt: now,
		}
		if err := s.SubmissionRepo.Create(submission); err != nil {
			return nil, err
		}
	}

	monitoring.SubmissionCounter.WithLabelValues("submitted").Inc()
	return submission, nil
}

// MySubmission 学生查看自己某次作业的答卷
func (s *SubmissionService) MySubmission(studentID, templateID uint) (*model.StudentSubmission, error) {
	submission, err := s.SubmissionRepo.FindByStudentAndTemplate(studentID, templateID)
	if err != nil {
		return nil, util.ErrSubmissionNotFound
	}
	return submission, nil
}

// SubmissionStatus 名册中一名学生对某次作业的提交状态
type SubmissionStatus struct {
	StudentID    uint   `json:"studentId"`
	LastName     string `json:"lastName"`
	FirstName    string `json:"firstName"`
	SubmissionID uint   `json:"submissionId,omitempty"`
	Submitted    bool   `json:"submitted"`
	Graded       bool   `json:"graded"`
	AutoScore    int    `json:"autoScore"`
	FinalScore   int    `json:"finalScore"`
	Grade        *int   `json:"grade,omitempty"`
}

// StatusList 教师查看某次作业全班的提交情况：名册 × 答卷
func (s *SubmissionService) StatusList(teacherID uint, templateID uint, isAdmin bool) ([]SubmissionStatus, error) {
	template, err := s.HomeworkRepo.FindByID(templateID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.checkOwnership(teacherID, template.ClassroomID, isAdmin); err != nil {
		return nil, err
	}

	roster, err := s.ProfileRepo.FindRoster(template.ClassroomID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.SubmissionRepo.FindByTemplate(templateID)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint]*model.StudentSubmission, len(submissions))
	for i := range submissions {
		byStudent[submissions[i].StudentID] = &submissions[i]
	}

	statuses := make([]SubmissionStatus, 0, len(roster))
	for _, p := range roster {
		status := SubmissionStatus{
			StudentID: p.UserID,
			LastName:  p.LastName,
			FirstName: p.FirstName,
		}
		if sub, ok := byStudent[p.UserID]; ok {
			status.SubmissionID = sub.ID
			status.Submitted = true
			status.Graded = sub.Graded
			status.AutoScore = sub.AutoScore
			status.FinalScore = sub.FinalScore
			status.Grade = sub.Grade
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// ReviewView 教师批改页所需的全部内容：答卷、题目和答案键
type ReviewView struct {
	Submission *model.StudentSubmission `json:"submission"`
	Template   *model.HomeworkTemplate  `json:"template"`
	Questions  []grading.Question       `json:"questions"`
	AnswerKey  map[string]string        `json:"answerKey"`
	Answers    map[string]string        `json:"answers"`
}

// GetForReview 教师打开一份答卷准备批改
func (s *SubmissionService) GetForReview(teacherID, submissionID uint, isAdmin bool) (*ReviewView, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, util.ErrSubmissionNotFound
	}
	template, err := s.HomeworkRepo.FindByID(submission.TemplateID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.checkOwnership(teacherID, template.ClassroomID, isAdmin); err != nil {
		return nil, err
	}

	questions, answerKey, err := decodeTemplate(template)
	if err != nil {
		return nil, err
	}
	var answers map[string]string
	if err := json.Unmarshal(submission.Answers, &answers); err != nil {
		return nil, err
	}

	return &ReviewView{
		Submission: submission,
		Template:   template,
		Questions:  questions,
		AnswerKey:  answerKey,
		Answers:    answers,
	}, nil
}

type ReviewReq struct {
	Answers    map[string]string `json:"answers" binding:"required"`
	FinalScore *int              `json:"finalScore" binding:"omitempty,gte=0"`
	Comment    string            `json:"comment"`
}

// Review 教师批改：可以改学生答案、手工定最终分、写评语。
// 自动分按改后的答案重算；最终分不做上限约束，教师给多少存多少。
// 批改完成后用作业绑定的评分量表把最终分映射成等级。
func (s *SubmissionService) Review(teacherID, submissionID uint, req ReviewReq, isAdmin bool) (*model.StudentSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, util.ErrSubmissionNotFound
	}
	template, err := s.HomeworkRepo.FindByID(submission.TemplateID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}
	if err := s.checkOwnership(teacherID, template.ClassroomID, isAdmin); err != nil {
		return nil, err
	}

	questions, answerKey, err := decodeTemplate(template)
	if err != nil {
		return nil, err
	}

	answers := canonicalAnswers(req.Answers)
	autoScore := grading.Score(questions, answerKey, answers)

	finalScore := autoScore
	if req.FinalScore != nil {
		finalScore = *req.FinalScore
	}

	scale, err := s.ScaleRepo.FindByID(template.GradeScaleID)
	if err != nil {
		return nil, util.ErrNoGradeScale
	}
	grade := grading.Mark(Thresholds(scale), finalScore)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	submission.Answers = answersJSON
	submission.AutoScore = autoScore
	submission.FinalScore = finalScore
	submission.Grade = &grade
	submission.Graded = true
	submission.TeacherComment = req.Comment

	if err := s.SubmissionRepo.Save(submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("graded").Inc()
	return submission, nil
}

func (s *SubmissionService) checkOwnership(teacherID, classroomID uint, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return util.ErrClassroomNotFound
	}
	if classroom.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return nil
}

func decodeTemplate(template *model.HomeworkTemplate) ([]grading.Question, map[string]string, error) {
	var questions []grading.Question
	if err := json.Unmarshal(template.Questions, &questions); err != nil {
		return nil, nil, err
	}
	var answerKey map[string]string
	if err := json.Unmarshal(template.AnswerKey, &answerKey); err != nil {
		return nil, nil, err
	}
	return questions, answerKey, nil
}

// canonicalAnswers 只保留键为十进制题号的条目，统一后续比对口径
func canonicalAnswers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		n, err := strconv.Atoi(k)
		if err != nil || n <= 0 {
			continue
		}
		out[grading.Key(n)] = v
	}
	return out
}
