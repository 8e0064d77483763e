package controller

import (
	"fmt"
	"io"

	"github.com/SinesysTech/aluminify-sub018/internal/service"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	service *service.ReportService
}

func NewReportController(s *service.ReportService) *ReportController {
	return &ReportController{service: s}
}

type GenerateReportRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

func (c *ReportController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.service.GenerateMonthly(ctx.Request.Context(), claims.CompanyID, claims.UserID, req.Year, req.Month)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, report)
}

func (c *ReportController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reports, err := c.service.List(claims.CompanyID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, reports)
}

func (c *ReportController) Download(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, stream, err := c.service.Open(ctx.Request.Context(), claims.CompanyID, ctx.Param("id"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	defer stream.Close()

	filename := fmt.Sprintf("appointments-%04d-%02d.csv", report.Year, report.Month)
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Type", "text/csv")
	if _, err := io.Copy(ctx.Writer, stream); err != nil {
		// headers already sent, nothing sensible left to answer
		return
	}
}
