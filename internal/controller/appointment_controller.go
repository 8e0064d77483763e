package controller

import (
	"strconv"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/service"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	service *service.AppointmentService
	quota   *service.QuotaService
}

func NewAppointmentController(s *service.AppointmentService, quota *service.QuotaService) *AppointmentController {
	return &AppointmentController{service: s, quota: quota}
}

func (c *AppointmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAppointmentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	appointment, err := c.service.Create(claims.UserID, claims.CompanyID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, appointment)
}

// List returns the caller's own appointments: bookings for students,
// the agenda for professors.
func (c *AppointmentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var (
		appointments []model.Appointment
		total        int64
		err          error
	)
	if claims.Role.CanActAs(model.Professor) {
		appointments, total, err = c.service.ListForProfessor(claims.UserID, page, limit)
	} else {
		appointments, total, err = c.service.ListForStudent(claims.UserID, page, limit)
	}
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"items": appointments,
		"total": total,
		"page":  page,
	})
}

type ConfirmRequest struct {
	MeetingLink string `json:"meetingLink"`
}

func (c *AppointmentController) Confirm(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	appointment, err := c.service.Confirm(claims.UserID, ctx.Param("id"), req.MeetingLink)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, appointment)
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (c *AppointmentController) Reject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	appointment, err := c.service.Reject(claims.UserID, ctx.Param("id"), req.Reason)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, appointment)
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func (c *AppointmentController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	appointment, err := c.service.Cancel(claims.UserID, claims.CompanyID, claims.Role, ctx.Param("id"), req.Reason)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, appointment)
}

// Quota reports the authenticated student's monthly allowance.
func (c *AppointmentController) Quota(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	info, err := c.quota.StudentQuotaInfo(claims.UserID, claims.CompanyID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, info)
}
