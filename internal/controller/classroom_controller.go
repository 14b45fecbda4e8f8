package controller

import (
	"errors"

	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClassroomController struct {
	ClassroomService *service.ClassroomService
	ReportService    *service.ReportService
}

func NewClassroomController(classroomService *service.ClassroomService, reportService *service.ReportService) *ClassroomController {
	return &ClassroomController{
		ClassroomService: classroomService,
		ReportService:    reportService,
	}
}

// Create godoc
// @Summary 创建班级
// @Description 教师创建班级，可同时圈定首批学生
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateClassroomReq true "班级信息"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/teacher/classrooms [post]
func (c *ClassroomController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateClassroomReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	classroom, err := c.ClassroomService.CreateClassroom(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, classroom)
}

// List godoc
// @Summary 我的班级
// @Description 教师名下的全部班级
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Classroom}
// @Router /api/teacher/classrooms [get]
func (c *ClassroomController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classrooms, err := c.ClassroomService.ListForTeacher(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, classrooms)
}

// Get godoc
// @Summary 班级详情
// @Description 班级信息、班主任档案和学生名册
// @Tags 班级
// @Produce  json
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=service.ClassroomDetail}
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/classrooms/{id} [get]
func (c *ClassroomController) Get(ctx *gin.Context) {
	classroomID := util.MustParseUint(ctx.Param("id"))
	detail, err := c.ClassroomService.GetClassroom(classroomID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, detail)
}

// AddStudents godoc
// @Summary 补录学生
// @Description 把学生加入自己的班级；学生换班时旧班级归属被覆盖
// @Tags 班级
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Param   body body service.AddStudentsReq true "学生ID列表"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "不是自己的班级"
// @Router /api/teacher/classrooms/{id}/students [post]
func (c *ClassroomController) AddStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classroomID := util.MustParseUint(ctx.Param("id"))

	var req service.AddStudentsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ClassroomService.AddStudents(claims.UserID, classroomID, req); err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Stats godoc
// @Summary 班级作业汇总
// @Description 班级全部作业的提交数、批改数和平均分
// @Tags 班级
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Success 200 {object} util.Response{data=service.ClassroomStats}
// @Failure 403 {object} util.Response "不是自己的班级"
// @Router /api/teacher/classrooms/{id}/stats [get]
func (c *ClassroomController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classroomID := util.MustParseUint(ctx.Param("id"))

	stats, err := c.ReportService.GetClassroomStats(ctx.Request.Context(), claims.UserID, classroomID, claims.IsAdmin())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// respondDomainError 业务层哨兵错误到 HTTP 状态码的统一映射
func respondDomainError(ctx *gin.Context, err error) {
	var verr *util.ValidationError
	switch {
	case errors.As(err, &verr):
		util.ValidationFailed(ctx, verr)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNotInClassroom):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrClassroomNotFound),
		errors.Is(err, util.ErrHomeworkNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNoGradeScale):
		util.Error(ctx, 409, "系统中没有可用的评分量表")
	case errors.Is(err, util.ErrScaleInUse):
		util.Error(ctx, 409, "评分量表仍被作业引用，无法删除")
	default:
		util.LogInternalError(ctx, err)
	}
}
