package controller

import (
	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// StudentProgress godoc
// @Summary 我的成绩曲线
// @Description 学生历次作业得分，按截止日期排列，前端画折线图用
// @Tags 报表
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentProgress}
// @Router /api/student/progress [get]
func (c *ReportController) StudentProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ReportService.GetStudentProgress(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
