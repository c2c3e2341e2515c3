package api

import (
	"errors"
	"fmt"
	"strings"

	"salonledger/middleware"
	"salonledger/models"
	"salonledger/report"
	"salonledger/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler 기간 리포트 처리기
type ReportHandler struct {
	*Deps
}

// NewReportHandler 리포트 처리기 생성
func NewReportHandler(d *Deps) *ReportHandler {
	return &ReportHandler{Deps: d}
}

// EmailReportRequest 리포트 메일 발송 요청
type EmailReportRequest struct {
	report.Filter
	To string `json:"to" binding:"required,email" example:"owner@example.com"`
}

func (h *ReportHandler) build(c *gin.Context, f report.Filter) (*report.Report, error) {
	scope := report.Scope{
		UserID:    middleware.GetCurrentUserID(c),
		AllOwners: models.CanReadAll(middleware.GetCurrentRole(c)),
	}
	entries, err := report.LoadEntries(c.Request.Context(), h.DB, scope, f)
	if err != nil {
		return nil, err
	}
	return report.Build(entries, f), nil
}

// reportTitle 예: "강남점 2025년 6월 리포트", "전체 지점 2025년 1~3월 리포트"
func reportTitle(f report.Filter) string {
	branch := strings.TrimSpace(f.Branch)
	if branch == "" {
		branch = "전체 지점"
	}
	start, end := f.StartMonth, f.EndMonth
	if f.Month > 0 {
		if start == 0 {
			start = f.Month
		}
		if end == 0 {
			end = f.Month
		}
	}
	switch {
	case start == 0 && end == 0:
		return fmt.Sprintf("%s %d년 리포트", branch, f.Year)
	case start == 0:
		start = 1
	case end == 0:
		end = start
	}
	if start == end {
		return fmt.Sprintf("%s %d년 %d월 리포트", branch, f.Year, start)
	}
	return fmt.Sprintf("%s %d년 %d~%d월 리포트", branch, f.Year, start, end)
}

// GenerateReport 기간 리포트
// @Summary 기간 리포트
// @Description 합계, 카테고리별, 고정/변동, 기간별(day|week|month) 집계와 입출금 상세
// @Tags 리포트
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body report.Filter true "조회 조건"
// @Success 200 {object} Response{data=report.Report}
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/reports [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var f report.Filter
	if err := c.ShouldBindJSON(&f); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	if err := f.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}
	rep, err := h.build(c, f)
	if err != nil {
		h.internal(c, "리포트 생성 실패", err)
		return
	}
	Success(c, rep)
}

// ExportReport 리포트 엑셀 다운로드
// @Summary 리포트 엑셀 내보내기
// @Tags 리포트
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param request body report.Filter true "조회 조건"
// @Success 200 {file} file "리포트"
// @Router /api/v1/reports/export [post]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var f report.Filter
	if err := c.ShouldBindJSON(&f); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	if err := f.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}
	rep, err := h.build(c, f)
	if err != nil {
		h.internal(c, "리포트 생성 실패", err)
		return
	}

	title := reportTitle(f)
	buf, err := service.ReportWorkbook(title, rep)
	if err != nil {
		h.internal(c, "엑셀 생성 실패", err)
		return
	}
	c.Header("Content-Disposition", service.ContentDisposition(title+".xlsx"))
	c.Data(200, service.XLSXContentType(), buf.Bytes())
}

// EmailReport 리포트 메일 발송
// @Summary 리포트 메일 발송
// @Description 요약을 본문에, 엑셀을 첨부로 보낸다. email.enabled 가 꺼져 있으면 400.
// @Tags 리포트
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EmailReportRequest true "조회 조건과 받는 사람"
// @Success 200 {object} Response
// @Failure 400 {object} Response "요청 오류 또는 메일 비활성"
// @Router /api/v1/reports/email [post]
func (h *ReportHandler) EmailReport(c *gin.Context) {
	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if !h.Email.Enabled() {
		BadRequest(c, service.ErrEmailDisabled.Error())
		return
	}

	rep, err := h.build(c, req.Filter)
	if err != nil {
		h.internal(c, "리포트 생성 실패", err)
		return
	}
	title := reportTitle(req.Filter)
	buf, err := service.ReportWorkbook(title, rep)
	if err != nil {
		h.internal(c, "엑셀 생성 실패", err)
		return
	}

	err = h.Email.SendReport(service.ReportMail{
		To:         req.To,
		Title:      title,
		Report:     rep,
		Attachment: buf.Bytes(),
		FileName:   title + ".xlsx",
	})
	if errors.Is(err, service.ErrEmailDisabled) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		h.internal(c, "메일 발송 실패", err)
		return
	}
	h.log(c).Info().Str("to", req.To).Str("title", title).Msg("리포트 메일 발송")
	SuccessWithMessage(c, "메일을 보냈습니다", gin.H{"to": req.To, "title": title})
}
