package api

import (
	"strings"

	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// SalonHandler 지점 월별 매출/방문 기록 처리기
type SalonHandler struct {
	*Deps
}

// NewSalonHandler 월별 기록 처리기 생성
func NewSalonHandler(d *Deps) *SalonHandler {
	return &SalonHandler{Deps: d}
}

// MonthlyDataQuery 월별 기록 조회 조건
type MonthlyDataQuery struct {
	Branch     string `form:"branch" binding:"required"`
	StartMonth string `form:"start_month" binding:"required"`
	EndMonth   string `form:"end_month" binding:"required"`
}

// MonthlyRecord 한 달 기록
type MonthlyRecord struct {
	Month             string  `json:"month" binding:"required" example:"2025-06"`
	CardSales         float64 `json:"card_sales" binding:"min=0"`
	PaySales          float64 `json:"pay_sales" binding:"min=0"`
	CashSales         float64 `json:"cash_sales" binding:"min=0"`
	AccountSales      float64 `json:"account_sales" binding:"min=0"`
	PassPaid          float64 `json:"pass_paid" binding:"min=0"`
	PassUsed          float64 `json:"pass_used" binding:"min=0"`
	VisitorsTotal     int     `json:"visitors_total" binding:"min=0"`
	ReturningVisitors int     `json:"returning_visitors" binding:"min=0"`
	WorkingDays       int     `json:"working_days" binding:"min=0,max=31"`
	Interns           int     `json:"interns" binding:"min=0"`
}

// MonthlyDataRequest 월별 기록 저장
type MonthlyDataRequest struct {
	Branch string          `json:"branch" binding:"required,max=100"`
	Months []MonthlyRecord `json:"months" binding:"required,min=1,dive"`
}

// monthlyData 지점의 월 범위 기록, 월 오름차순
func (d *Deps) monthlyData(c *gin.Context, branch, startMonth, endMonth string) ([]models.SalonMonthlyData, error) {
	list := []models.SalonMonthlyData{}
	err := d.scoped(c).
		Where("branch = ? AND month >= ? AND month <= ?", branch, startMonth, endMonth).
		Order("month ASC").
		Find(&list).Error
	return list, err
}

// ListMonthlyData 월별 기록 조회
// @Summary 월별 매출/방문 기록
// @Tags 지점 운영
// @Produce json
// @Security BearerAuth
// @Param branch query string true "지점"
// @Param start_month query string true "시작월 YYYY-MM"
// @Param end_month query string true "종료월 YYYY-MM"
// @Success 200 {object} Response
// @Router /api/v1/salon/monthly-data [get]
func (h *SalonHandler) ListMonthlyData(c *gin.Context) {
	var q MonthlyDataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "branch, start_month, end_month 는 필수입니다")
		return
	}
	list, err := h.monthlyData(c, q.Branch, q.StartMonth, q.EndMonth)
	if err != nil {
		h.internal(c, "월별 기록 조회 실패", err)
		return
	}
	Success(c, gin.H{"months": list})
}

// SaveMonthlyData 월별 기록 저장
// @Summary 월별 매출/방문 기록 저장
// @Description (지점, 월) 단위로 덮어쓴다.
// @Tags 지점 운영
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MonthlyDataRequest true "기록"
// @Success 200 {object} Response
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/salon/monthly-data [post]
func (h *SalonHandler) SaveMonthlyData(c *gin.Context) {
	var req MonthlyDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	userID := middleware.GetCurrentUserID(c)
	branch := strings.TrimSpace(req.Branch)

	rows := make([]models.SalonMonthlyData, 0, len(req.Months))
	for _, m := range req.Months {
		if _, err := parseMonth(m.Month); err != nil {
			BadRequest(c, err.Error())
			return
		}
		rows = append(rows, models.SalonMonthlyData{
			UserID:            userID,
			Branch:            branch,
			Month:             m.Month,
			CardSales:         m.CardSales,
			PaySales:          m.PaySales,
			CashSales:         m.CashSales,
			AccountSales:      m.AccountSales,
			PassPaid:          m.PassPaid,
			PassUsed:          m.PassUsed,
			VisitorsTotal:     m.VisitorsTotal,
			ReturningVisitors: m.ReturningVisitors,
			WorkingDays:       m.WorkingDays,
			Interns:           m.Interns,
		})
	}

	err := h.DB.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "branch"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"card_sales", "pay_sales", "cash_sales", "account_sales", "pass_paid", "pass_used",
			"visitors_total", "returning_visitors", "working_days", "interns", "updated_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		h.internal(c, "월별 기록 저장 실패", err)
		return
	}
	Success(c, gin.H{"ok": true, "saved": len(rows)})
}
