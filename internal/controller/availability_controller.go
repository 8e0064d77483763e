package controller

import (
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/service"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	service *service.AvailabilityService
}

func NewAvailabilityController(s *service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{service: s}
}

// Slots resolves a professor's open slots for one date
// (?professorId=&date=YYYY-MM-DD).
func (c *AvailabilityController) Slots(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	professorID := ctx.Query("professorId")
	if professorID == "" {
		util.BadRequest(ctx, "professorId is required")
		return
	}

	date, err := time.Parse(util.DateFormat, ctx.Query("date"))
	if err != nil {
		util.BadRequest(ctx, "date must be YYYY-MM-DD")
		return
	}

	slots, err := c.service.ResolveAvailableSlots(professorID, claims.CompanyID, date)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"professorId": professorID,
		"date":        ctx.Query("date"),
		"slots":       slots,
	})
}

func (c *AvailabilityController) ListRules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rules, err := c.service.ListRules(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, rules)
}

func (c *AvailabilityController) CreateRule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rule, err := c.service.CreateRule(claims.UserID, claims.CompanyID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, rule)
}

func (c *AvailabilityController) UpdateRule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rule, err := c.service.UpdateRule(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, rule)
}

func (c *AvailabilityController) DeleteRule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.service.DeleteRule(claims.UserID, ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

func (c *AvailabilityController) GetSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	settings, err := c.service.Settings(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, settings)
}

func (c *AvailabilityController) SaveSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SaveSettingsInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings, err := c.service.SaveSettings(claims.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, settings)
}

func (c *AvailabilityController) ListBlockages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	blockages, err := c.service.ListBlockages(claims.CompanyID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, blockages)
}

func (c *AvailabilityController) CreateBlockage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BlockageInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	blockage, err := c.service.CreateBlockage(claims.CompanyID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, blockage)
}

func (c *AvailabilityController) UpdateBlockage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BlockageInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	blockage, err := c.service.UpdateBlockage(claims.CompanyID, ctx.Param("id"), req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, blockage)
}

func (c *AvailabilityController) DeleteBlockage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.service.DeleteBlockage(claims.CompanyID, ctx.Param("id")); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
