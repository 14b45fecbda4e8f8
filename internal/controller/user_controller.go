package controller

import (
	"errors"

	"homework_backend/internal/service"
	"homework_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 查看个人主页
// @Description 按用户 ID 查看公开的个人主页
// @Tags 用户
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/profiles/{id} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	view, err := c.UserService.GetProfile(userID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, view)
}

// UpdateProfile godoc
// @Summary 修改个人档案
// @Description 修改自己的姓名和出生日期
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileReq true "档案字段"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 400 {object} util.Response "字段校验失败"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(claims.UserID, req)
	if err != nil {
		var verr *util.ValidationError
		switch {
		case errors.As(err, &verr):
			util.ValidationFailed(ctx, verr)
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, profile)
}
