package controller

import (
	"github.com/SinesysTech/aluminify-sub018/internal/service"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{service: s}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.service.Register(req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.service.Login(req.Email, req.Password)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.service.Profile(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
