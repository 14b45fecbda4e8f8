package service

import (
	"fmt"
	"testing"
	"time"

	"homework_backend/internal/config"
	"homework_backend/internal/model"
	"homework_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Classroom{},
		&model.GradeScale{},
		&model.HomeworkTemplate{},
		&model.StudentSubmission{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db  *gorm.DB
	cfg *config.Config

	users       *repository.UserRepository
	profiles    *repository.ProfileRepository
	classrooms  *repository.ClassroomRepository
	scales      *repository.GradeScaleRepository
	homework    *repository.HomeworkRepository
	submissions *repository.SubmissionRepository

	auth          *AuthService
	classroomSvc  *ClassroomService
	gradeScaleSvc *GradeScaleService
	homeworkSvc   *HomeworkService
	submissionSvc *SubmissionService
	reportSvc     *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour

	env := &testEnv{
		db:          db,
		cfg:         cfg,
		users:       repository.NewUserRepository(db),
		profiles:    repository.NewProfileRepository(db),
		classrooms:  repository.NewClassroomRepository(db),
		scales:      repository.NewGradeScaleRepository(db),
		homework:    repository.NewHomeworkRepository(db),
		submissions: repository.NewSubmissionRepository(db),
	}

	env.auth = NewAuthService(env.users, env.profiles, db, cfg)
	env.classroomSvc = NewClassroomService(env.classrooms, env.profiles, env.users, db)
	env.gradeScaleSvc = NewGradeScaleService(env.scales, env.homework)
	env.homeworkSvc = NewHomeworkService(env.homework, env.classrooms, env.profiles, env.scales, nil)
	env.submissionSvc = NewSubmissionService(env.submissions, env.homework, env.classrooms, env.profiles, env.scales)
	env.reportSvc = NewReportService(env.submissions, env.homework, env.classrooms, env.profiles, env.scales, nil)

	return env
}

var userSeq int

func (e *testEnv) seedUser(t *testing.T, role model.UserRole, lastName string) *model.User {
	t.Helper()

	userSeq++
	user := &model.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@school.test", userSeq),
		Password: "hashed",
		Role:     role,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &model.Profile{
		UserID:    user.ID,
		LastName:  lastName,
		FirstName: "Test",
	}
	if err := e.db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return user
}

func (e *testEnv) seedClassroom(t *testing.T, teacherID uint, studentIDs ...uint) *model.Classroom {
	t.Helper()

	classroom := &model.Classroom{Name: "7A", TeacherID: teacherID}
	if err := e.db.Create(classroom).Error; err != nil {
		t.Fatalf("seed classroom: %v", err)
	}
	for _, id := range studentIDs {
		err := e.db.Model(&model.Profile{}).Where("user_id = ?", id).Update("classroom_id", classroom.ID).Error
		if err != nil {
			t.Fatalf("assign student: %v", err)
		}
	}
	return classroom
}

func (e *testEnv) seedScale(t *testing.T) *model.GradeScale {
	t.Helper()

	scale := &model.GradeScale{Threshold2: 30, Threshold3: 51, Threshold4: 71, Threshold5: 89}
	if err := e.db.Create(scale).Error; err != nil {
		t.Fatalf("seed scale: %v", err)
	}
	return scale
}

// seedHomework 经由正常出题流程落一份三道题的作业：整数、文本、小数各一道
func (e *testEnv) seedHomework(t *testing.T, teacherID, classroomID uint) *model.HomeworkTemplate {
	t.Helper()

	template, err := e.homeworkSvc.CreateHomework(teacherID, classroomID, CreateHomeworkReq{
		Title:        "Арифметика",
		AssignedDate: "2026-02-01",
		Deadline:     "2026-02-08",
		Questions: []QuestionRow{
			{Number: 1, Format: "integer", Answer: "4"},
			{Number: 2, Format: "text", Answer: "Paris"},
			{Number: 3, Format: "float", Answer: "4.5"},
		},
	})
	if err != nil {
		t.Fatalf("seed homework: %v", err)
	}
	return template
}
