package controller

import (
	"strconv"

	"github.com/SinesysTech/aluminify-sub018/internal/service"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"github.com/gin-gonic/gin"
)

type StudySessionController struct {
	service *service.StudySessionService
}

func NewStudySessionController(s *service.StudySessionService) *StudySessionController {
	return &StudySessionController{service: s}
}

// Start opens a study session for the authenticated student. The
// student identity always comes from the JWT claims, never the body.
func (c *StudySessionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartSessionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.service.Start(claims.UserID, claims.CompanyID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

type HeartbeatRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func (c *StudySessionController) Heartbeat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req HeartbeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.service.Heartbeat(ctx.Request.Context(), claims.UserID, req.SessionID); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"ok": true})
}

func (c *StudySessionController) Finalize(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.FinalizeSessionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.service.Finalize(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

func (c *StudySessionController) Active(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.service.Active(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

func (c *StudySessionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	sessions, total, err := c.service.List(claims.UserID, page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"items": sessions,
		"total": total,
		"page":  page,
	})
}
