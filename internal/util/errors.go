package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrUsernameTaken      = errors.New("该用户名已被占用")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrClassroomNotFound  = errors.New("classroom not found")
	ErrHomeworkNotFound   = errors.New("homework not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotInClassroom     = errors.New("student not in classroom")
	ErrNoGradeScale       = errors.New("no grade scale configured")
	ErrScaleInUse         = errors.New("grade scale referenced by homework")
)
