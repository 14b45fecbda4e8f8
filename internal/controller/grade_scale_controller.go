package controller

import (
	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeScaleController struct {
	GradeScaleService *service.GradeScaleService
}

func NewGradeScaleController(gradeScaleService *service.GradeScaleService) *GradeScaleController {
	return &GradeScaleController{GradeScaleService: gradeScaleService}
}

// Create godoc
// @Summary 创建评分量表
// @Description 管理员创建五级制评分量表
// @Tags 评分量表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GradeScaleReq true "量表阈值"
// @Success 201 {object} util.Response{data=model.GradeScale}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/grade-scales [post]
func (c *GradeScaleController) Create(ctx *gin.Context) {
	var req service.GradeScaleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scale, err := c.GradeScaleService.CreateScale(req)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Created(ctx, scale)
}

// List godoc
// @Summary 量表列表
// @Tags 评分量表
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.GradeScale}
// @Router /api/admin/grade-scales [get]
func (c *GradeScaleController) List(ctx *gin.Context) {
	scales, err := c.GradeScaleService.ListScales()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scales)
}

// Get godoc
// @Summary 量表详情
// @Tags 评分量表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "量表ID"
// @Success 200 {object} util.Response{data=model.GradeScale}
// @Failure 404 {object} util.Response "量表不存在"
// @Router /api/admin/grade-scales/{id} [get]
func (c *GradeScaleController) Get(ctx *gin.Context) {
	scale, err := c.GradeScaleService.GetScale(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, scale)
}

// Update godoc
// @Summary 修改量表
// @Description 修改阈值；已布置作业的等级不回溯重算
// @Tags 评分量表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "量表ID"
// @Param   body body service.GradeScaleReq true "量表阈值"
// @Success 200 {object} util.Response{data=model.GradeScale}
// @Failure 404 {object} util.Response "量表不存在"
// @Router /api/admin/grade-scales/{id} [put]
func (c *GradeScaleController) Update(ctx *gin.Context) {
	var req service.GradeScaleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scale, err := c.GradeScaleService.UpdateScale(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, scale)
}

// Delete godoc
// @Summary 删除量表
// @Description 仍被作业引用的量表拒绝删除
// @Tags 评分量表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "量表ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "量表仍被作业引用"
// @Router /api/admin/grade-scales/{id} [delete]
func (c *GradeScaleController) Delete(ctx *gin.Context) {
	if err := c.GradeScaleService.DeleteScale(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
