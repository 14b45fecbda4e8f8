package controller

import (
	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	ReportService     *service.ReportService
}

func NewSubmissionController(submissionService *service.SubmissionService, reportService *service.ReportService) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		ReportService:     reportService,
	}
}

// Submit godoc
// @Summary 提交答卷
// @Description 学生提交作业答案并立即自动判分；重复提交覆盖旧答卷并作废批改结果
// @Tags 提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Param   body body service.SubmitReq true "题号到答案的映射"
// @Success 200 {object} util.Response{data=model.StudentSubmission}
// @Failure 403 {object} util.Response "不在作业所属班级"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/homework/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	templateID := util.MustParseUint(ctx.Param("id"))

	var req service.SubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Submit(claims.UserID, templateID, req)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}

	c.ReportService.InvalidateStudent(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, submission)
}

// Mine godoc
// @Summary 我的答卷
// @Description 学生查看自己某次作业的答卷和得分
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=model.StudentSubmission}
// @Failure 404 {object} util.Response "尚未提交"
// @Router /api/homework/{id}/submissions/me [get]
func (c *SubmissionController) Mine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	templateID := util.MustParseUint(ctx.Param("id"))

	submission, err := c.SubmissionService.MySubmission(claims.UserID, templateID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// StatusList godoc
// @Summary 全班提交情况
// @Description 名册里每个学生的提交与批改状态
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionStatus}
// @Failure 403 {object} util.Response "不是自己班级的作业"
// @Router /api/teacher/homework/{id}/submissions [get]
func (c *SubmissionController) StatusList(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	templateID := util.MustParseUint(ctx.Param("id"))

	statuses, err := c.SubmissionService.StatusList(claims.UserID, templateID, claims.IsAdmin())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}

// GetForReview godoc
// @Summary 打开答卷
// @Description 教师打开一份答卷，带题目、答案键和学生作答
// @Tags 提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "答卷ID"
// @Success 200 {object} util.Response{data=service.ReviewView}
// @Failure 404 {object} util.Response "答卷不存在"
// @Router /api/teacher/submissions/{id} [get]
func (c *SubmissionController) GetForReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissionID := util.MustParseUint(ctx.Param("id"))

	view, err := c.SubmissionService.GetForReview(claims.UserID, submissionID, claims.IsAdmin())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Review godoc
// @Summary 批改答卷
// @Description 教师修订答案、手工定最终分并写评语；最终分按量表映射成等级
// @Tags 提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "答卷ID"
// @Param   body body service.ReviewReq true "批改内容"
// @Success 200 {object} util.Response{data=model.StudentSubmission}
// @Failure 403 {object} util.Response "不是自己班级的答卷"
// @Router /api/teacher/submissions/{id}/review [put]
func (c *SubmissionController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissionID := util.MustParseUint(ctx.Param("id"))

	var req service.ReviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Review(claims.UserID, submissionID, req, claims.IsAdmin())
	if err != nil {
		respondDomainError(ctx, err)
		return
	}

	c.ReportService.InvalidateStudent(ctx.Request.Context(), submission.StudentID)
	util.Success(ctx, submission)
}
