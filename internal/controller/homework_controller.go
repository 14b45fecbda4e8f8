package controller

import (
	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HomeworkController struct {
	HomeworkService *service.HomeworkService
}

func NewHomeworkController(homeworkService *service.HomeworkService) *HomeworkController {
	return &HomeworkController{HomeworkService: homeworkService}
}

// Create godoc
// @Summary 布置作业
// @Description 教师给自己的班级布置结构化作业；任何一题校验不过整次提交拒绝
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "班级ID"
// @Param   body body service.CreateHomeworkReq true "作业内容"
// @Success 201 {object} util.Response{data=model.HomeworkTemplate}
// @Failure 400 {object} util.Response "字段校验失败"
// @Failure 409 {object} util.Response "系统中没有评分量表"
// @Router /api/teacher/classrooms/{id}/homework [post]
func (c *HomeworkController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classroomID := util.MustParseUint(ctx.Param("id"))

	var req service.CreateHomeworkReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	template, err := c.HomeworkService.CreateHomework(claims.UserID, classroomID, req)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Created(ctx, template)
}

// UploadFile godoc
// @Summary 上传作业附件
// @Description 给作业挂题目文件，学生端只读下载
// @Tags 作业
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Param   file formData file true "附件"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件类型不允许"
// @Router /api/teacher/homework/{id}/file [post]
func (c *HomeworkController) UploadFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	templateID := util.MustParseUint(ctx.Param("id"))

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少文件")
		return
	}

	url, err := c.HomeworkService.UploadAttachment(ctx, claims.UserID, templateID, file)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// List godoc
// @Summary 作业列表
// @Description 教师看自己班级的作业，学生看所属班级的作业
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.HomeworkTemplate}
// @Router /api/homework [get]
func (c *HomeworkController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	templates, err := c.HomeworkService.ListForUser(claims)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, templates)
}

// Get godoc
// @Summary 作业详情
// @Description 作业题目和元信息；答案键只出现在出题教师的视图里
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=service.HomeworkView}
// @Failure 403 {object} util.Response "不在作业所属班级"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/homework/{id} [get]
func (c *HomeworkController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	templateID := util.MustParseUint(ctx.Param("id"))

	view, err := c.HomeworkService.GetForUser(claims, templateID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
