package service

import (
	"encoding/json"
	"fmt"
	"homework_backend/internal/grading"
	"homework_backend/internal/model"
	"homework_backend/internal/repository"
	"homework_backend/internal/util"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HomeworkService struct {
	HomeworkRepo   *repository.HomeworkRepository
	ClassroomRepo  *repository.ClassroomRepository
	ProfileRepo    *repository.ProfileRepository
	ScaleRepo      *repository.GradeScaleRepository
	StorageService *StorageService
}

func NewHomeworkService(homeworkRepo *repository.HomeworkRepository, classroomRepo *repository.ClassroomRepository, profileRepo *repository.ProfileRepository, scaleRepo *repository.GradeScaleRepository, storageService *StorageService) *HomeworkService {
	return &HomeworkService{
		HomeworkRepo:   homeworkRepo,
		ClassroomRepo:  classroomRepo,
		ProfileRepo:    profileRepo,
		ScaleRepo:      scaleRepo,
		StorageService: storageService,
	}
}

// QuestionRow 出题表单的一行。Delete 标记的行在校验前剔除。
type QuestionRow struct {
	Number int    `json:"number"`
	Format string `json:"format"`
	Answer string `json:"answer"`
	Delete bool   `json:"delete"`
}

type CreateHomeworkReq struct {
	Title        string        `json:"title" binding:"required,max=64"`
	Description  string        `json:"description"`
	AssignedDate string        `json:"assignedDate" binding:"required"` // YYYY-MM-DD
	Deadline     string        `json:"deadline" binding:"required"`     // YYYY-MM-DD
	GradeScaleID uint          `json:"gradeScaleId"`
	Questions    []QuestionRow `json:"questions" binding:"required"`
}

// CreateHomework 教师给自己的班级布置作业。
// 系统中没有任何评分量表时整个操作失败；任何一行校验不过整次提交拒绝，不落库。
// 保留的题目按题号升序持久化，答案单独存为答案键，不进入学生可见结构。
func (s *HomeworkService) CreateHomework(teacherID, classroomID uint, req CreateHomeworkReq) (*model.HomeworkTemplate, error) {
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return nil, util.ErrClassroomNotFound
	}
	if classroom.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	scaleCount, err := s.ScaleRepo.Count()
	if err != nil {
		return nil, err
	}
	if scaleCount == 0 {
		return nil, util.ErrNoGradeScale
	}

	var scale *model.GradeScale
	if req.GradeScaleID != 0 {
		scale, err = s.ScaleRepo.FindByID(req.GradeScaleID)
		if err != nil {
			return nil, util.ErrNoGradeScale
		}
	} else {
		scale, err = s.ScaleRepo.FirstForTeacher(teacherID)
		if err != nil {
			return nil, util.ErrNoGradeScale
		}
	}

	assignedDate, deadline, verr := parseHomeworkDates(req.AssignedDate, req.Deadline)

	// 剔除标记删除的行后再校验
	rows := make([]QuestionRow, 0, len(req.Questions))
	for _, row := range req.Questions {
		if !row.Delete {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		verr.Add("questions", "at least one question is required")
	}

	seen := make(map[int]bool, len(rows))
	for i, row := range rows {
		field := fmt.Sprintf("questions[%d]", i)
		if row.Number <= 0 {
			verr.Add(field+".number", "question number must be a positive integer")
			continue
		}
		if seen[row.Number] {
			verr.Add(field+".number", fmt.Sprintf("duplicate question number %d", row.Number))
			continue
		}
		seen[row.Number] = true
		if !grading.ValidFormat(grading.Format(row.Format)) {
			verr.Add(field+".format", "format must be one of text, integer, float")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	// 出题顺序不保留，规范顺序是题号升序
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Number < rows[j].Number
	})

	questions := make([]grading.Question, len(rows))
	answerKey := make(map[string]string, len(rows))
	for i, row := range rows {
		questions[i] = grading.Question{
			Number: row.Number,
			Format: grading.Format(row.Format),
		}
		answerKey[grading.Key(row.Number)] = trimAnswer(row.Answer)
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	answerKeyJSON, err := json.Marshal(answerKey)
	if err != nil {
		return nil, err
	}

	template := &model.HomeworkTemplate{
		Title:        req.Title,
		Description:  req.Description,
		ClassroomID:  classroomID,
		Questions:    questionsJSON,
		AnswerKey:    answerKeyJSON,
		AssignedDate: assignedDate,
		Deadline:     deadline,
		MaxScore:     len(questions),
		GradeScaleID: scale.ID,
	}

	if err := s.HomeworkRepo.Create(template); err != nil {
		return nil, err
	}
	return template, nil
}

func trimAnswer(s string) string {
	return strings.TrimSpace(s)
}

func parseHomeworkDates(assigned, deadline string) (time.Time, time.Time, *util.ValidationError) {
	verr := util.NewValidationError()

	assignedDate, err := time.Parse(util.DateFormat, assigned)
	if err != nil {
		verr.Add("assignedDate", "invalid date, expected YYYY-MM-DD")
	}
	deadlineDate, err := time.Parse(util.DateFormat, deadline)
	if err != nil {
		verr.Add("deadline", "invalid date, expected YYYY-MM-DD")
	}

	return assignedDate, deadlineDate, verr
}

// UploadAttachment 上传作业附件（题目文件），核心逻辑不解析其内容
func (s *HomeworkService) UploadAttachment(c *gin.Context, teacherID, templateID uint, file *multipart.FileHeader) (string, error) {
	template, err := s.HomeworkRepo.FindByID(templateID)
	if err != nil {
		return "", util.ErrHomeworkNotFound
	}

	classroom, err := s.ClassroomRepo.FindByID(template.ClassroomID)
	if err != nil {
		return "", util.ErrClassroomNotFound
	}
	if classroom.TeacherID != teacherID {
		return "", util.ErrPermissionDenied
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	allowedTypes := []string{util.MimePDF, util.MimeImage, util.MimeText, util.MimeWord, util.MimeWordOpenXML, "application/zip", "application/octet-stream"}
	if _, err := util.ValidateMimeType(src, allowedTypes); err != nil {
		return "", fmt.Errorf("非法的文件内容: %v", err)
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := "homeworks/" + time.Now().Format("20060102150405") + "_" + uuid.New().String()[:8] + ext

	url, err := s.StorageService.Upload(c, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	if err := s.HomeworkRepo.UpdateAttachment(template.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

// HomeworkView 学生可见的作业视图，答案键只在教师视图里出现
type HomeworkView struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	ClassroomID   uint               `json:"classroomId"`
	AttachmentURL string             `json:"attachmentUrl,omitempty"`
	Questions     []grading.Question `json:"questions"`
	AssignedDate  time.Time          `json:"assignedDate"`
	Deadline      time.Time          `json:"deadline"`
	MaxScore      int                `json:"maxScore"`
	GradeScaleID  uint               `json:"gradeScaleId"`
	AnswerKey     map[string]string  `json:"answerKey,omitempty"`
}

// ListForUser 按角色列出可见作业：教师看自己所有班级的，学生看所属班级的
func (s *HomeworkService) ListForUser(claims *util.Claims) ([]model.HomeworkTemplate, error) {
	switch claims.Role {
	case model.Teacher, model.Admin:
		classrooms, err := s.ClassroomRepo.FindByTeacher(claims.UserID)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, len(classrooms))
		for i, c := range classrooms {
			ids[i] = c.ID
		}
		return s.HomeworkRepo.FindByClassrooms(ids)
	default:
		profile, err := s.ProfileRepo.FindByUserID(claims.UserID)
		if err != nil {
			return nil, util.ErrUserNotFound
		}
		if profile.ClassroomID == nil {
			return nil, nil
		}
		return s.HomeworkRepo.FindByClassroom(*profile.ClassroomID)
	}
}

// GetForUser 作业详情。学生必须属于作业所在班级，且拿不到答案键。
func (s *HomeworkService) GetForUser(claims *util.Claims, templateID uint) (*HomeworkView, error) {
	template, err := s.HomeworkRepo.FindByID(templateID)
	if err != nil {
		return nil, util.ErrHomeworkNotFound
	}

	classroom, err := s.ClassroomRepo.FindByID(template.ClassroomID)
	if err != nil {
		return nil, util.ErrClassroomNotFound
	}

	isOwner := classroom.TeacherID == claims.UserID || claims.Role == model.Admin
	if !isOwner {
		profile, err := s.ProfileRepo.FindByUserID(claims.UserID)
		if err != nil {
			return nil, util.ErrPermissionDenied
		}
		if profile.ClassroomID == nil || *profile.ClassroomID != template.ClassroomID {
			return nil, util.ErrPermissionDenied
		}
	}

	var questions []grading.Question
	if err := json.Unmarshal(template.Questions, &questions); err != nil {
		return nil, err
	}

	view := &HomeworkView{
		ID:            template.ID,
		Title:         template.Title,
		Description:   template.Description,
		ClassroomID:   template.ClassroomID,
		AttachmentURL: template.AttachmentURL,
		Questions:     questions,
		AssignedDate:  template.AssignedDate,
		Deadline:      template.Deadline,
		MaxScore:      template.MaxScore,
		GradeScaleID:  template.GradeScaleID,
	}

	if isOwner {
		var answerKey map[string]string
		if err := json.Unmarshal(template.AnswerKey, &answerKey); err != nil {
			return nil, err
		}
		view.AnswerKey = answerKey
	}

	return view, nil
}
