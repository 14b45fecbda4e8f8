package controller

import (
	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DemoController struct {
	DemoService *service.DemoService
}

func NewDemoController(demoService *service.DemoService) *DemoController {
	return &DemoController{DemoService: demoService}
}

// Questions godoc
// @Summary 体验作业题目
// @Description 免登录的示例作业，题目来自配置
// @Tags 体验
// @Produce  json
// @Success 200 {object} util.Response{data=[]config.DemoQuestion}
// @Router /api/demo/homework [get]
func (c *DemoController) Questions(ctx *gin.Context) {
	util.Success(ctx, c.DemoService.Questions())
}

// DemoCheckRequest 体验作业判分请求
type DemoCheckRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// Check godoc
// @Summary 体验作业判分
// @Description 立即返回得分，不保存任何数据
// @Tags 体验
// @Accept  json
// @Produce  json
// @Param   body body DemoCheckRequest true "题号到答案的映射"
// @Success 200 {object} util.Response{data=service.DemoResult}
// @Router /api/demo/check [post]
func (c *DemoController) Check(ctx *gin.Context) {
	var req DemoCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.DemoService.Check(req.Answers))
}
