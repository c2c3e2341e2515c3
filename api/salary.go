package api

import (
	"strings"

	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SalaryHandler 급여 기록 처리기
type SalaryHandler struct {
	*Deps
}

// NewSalaryHandler 급여 처리기 생성
func NewSalaryHandler(d *Deps) *SalaryHandler {
	return &SalaryHandler{Deps: d}
}

// SalaryItem 직접 입력 급여 한 건
type SalaryItem struct {
	Branch      string   `json:"branch" binding:"required,max=100"`
	Name        string   `json:"name" binding:"required,max=50"`
	Rank        string   `json:"rank" binding:"max=20"`
	Month       string   `json:"month" binding:"required" example:"2025-06"`
	BaseAmount  float64  `json:"base_amount" binding:"min=0"`
	ExtraAmount float64  `json:"extra_amount" binding:"min=0"`
	TotalAmount *float64 `json:"total_amount"`
	Sales       float64  `json:"sales" binding:"min=0"`
}

func (it SalaryItem) record(userID uint) models.DesignerSalary {
	total := it.BaseAmount + it.ExtraAmount
	if it.TotalAmount != nil && *it.TotalAmount != 0 {
		total = *it.TotalAmount
	}
	rank := strings.TrimSpace(it.Rank)
	if rank == "" {
		rank = models.RankDesigner
	}
	return models.DesignerSalary{
		UserID:      userID,
		Branch:      strings.TrimSpace(it.Branch),
		Name:        strings.TrimSpace(it.Name),
		Rank:        rank,
		Month:       it.Month,
		BaseAmount:  it.BaseAmount,
		ExtraAmount: it.ExtraAmount,
		TotalAmount: total,
		Sales:       it.Sales,
	}
}

// SaveManual 급여 직접 입력 저장
// @Summary 급여 저장
// @Description 같은 (지점, 이름, 월) 기록을 지우고 새로 넣는다. 요청 안의 중복 키는 마지막 항목만 반영. total_amount 가 없으면 기본급+추가급.
// @Tags 급여
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []SalaryItem true "급여 목록"
// @Success 200 {object} Response
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/transactions/salary_manual_save [post]
func (h *SalaryHandler) SaveManual(c *gin.Context) {
	var items []SalaryItem
	if err := c.ShouldBindJSON(&items); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	if len(items) == 0 {
		Success(c, gin.H{"ok": true, "inserted": 0})
		return
	}

	userID := middleware.GetCurrentUserID(c)
	records := make([]models.DesignerSalary, 0, len(items))
	// 같은 (지점, 이름, 월) 이 여러 번 오면 마지막 값만 남긴다
	seen := make(map[string]int, len(items))
	for _, it := range items {
		if _, err := parseMonth(it.Month); err != nil {
			BadRequest(c, err.Error())
			return
		}
		r := it.record(userID)
		key := r.Branch + "\x00" + r.Name + "\x00" + r.Month
		if i, ok := seen[key]; ok {
			records[i] = r
			continue
		}
		seen[key] = len(records)
		records = append(records, r)
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, r := range records {
			err := tx.Where("user_id = ? AND branch = ? AND name = ? AND month = ?", userID, r.Branch, r.Name, r.Month).
				Delete(&models.DesignerSalary{}).Error
			if err != nil {
				return err
			}
		}
		return tx.CreateInBatches(&records, h.Config.Ingest.ChunkSize).Error
	})
	if err != nil {
		h.internal(c, "급여 저장 실패", err)
		return
	}
	Success(c, gin.H{"ok": true, "inserted": len(records)})
}

// SalaryKey 급여 삭제 대상
type SalaryKey struct {
	Branch string `json:"branch" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Month  string `json:"month" binding:"required"`
}

// DeleteManual 급여 삭제
// @Summary 급여 삭제
// @Tags 급여
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SalaryKey true "삭제 대상"
// @Success 200 {object} Response
// @Failure 400 {object} Response "필수 필드 누락"
// @Router /api/v1/transactions/salary_manual_delete [post]
func (h *SalaryHandler) DeleteManual(c *gin.Context) {
	var req SalaryKey
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "필수 필드 누락: "+err.Error())
		return
	}
	res := h.owned(c).
		Where("branch = ? AND name = ? AND month = ?", req.Branch, req.Name, req.Month).
		Delete(&models.DesignerSalary{})
	if res.Error != nil {
		h.internal(c, "급여 삭제 실패", res.Error)
		return
	}
	Success(c, gin.H{"deleted": res.RowsAffected})
}

// SalaryQuery 급여 조회 조건
type SalaryQuery struct {
	Branch     string `form:"branch" binding:"required"`
	StartMonth string `form:"start_month" binding:"required"`
	EndMonth   string `form:"end_month" binding:"required"`
}

// salaries 지점의 월 범위 급여 기록
func (d *Deps) salaries(c *gin.Context, branch, startMonth, endMonth string) ([]models.DesignerSalary, error) {
	list := []models.DesignerSalary{}
	err := d.scoped(c).
		Where("branch = ? AND month >= ? AND month <= ?", branch, startMonth, endMonth).
		Order("month ASC, name ASC").
		Find(&list).Error
	return list, err
}

// ListSalaries 급여 기록 조회
// @Summary 급여 기록
// @Tags 급여
// @Produce json
// @Security BearerAuth
// @Param branch query string true "지점"
// @Param start_month query string true "시작월 YYYY-MM"
// @Param end_month query string true "종료월 YYYY-MM"
// @Success 200 {object} Response{data=[]models.DesignerSalary}
// @Router /api/v1/designer_salaries [get]
func (h *SalaryHandler) ListSalaries(c *gin.Context) {
	var q SalaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	list, err := h.salaries(c, q.Branch, q.StartMonth, q.EndMonth)
	if err != nil {
		h.internal(c, "급여 조회 실패", err)
		return
	}
	Success(c, list)
}

// AutoLoadQuery 급여 자동 불러오기 조건
type AutoLoadQuery struct {
	Branch string `form:"branch" binding:"required"`
	Start  string `form:"start" binding:"required" example:"2025-01"`
	End    string `form:"end" binding:"required" example:"2025-06"`
}

// AutoSalary 월급 거래에서 만든 급여 후보
type AutoSalary struct {
	Name  string  `json:"name"`
	Rank  string  `json:"rank"`
	Base  float64 `json:"base"`
	Extra float64 `json:"extra"`
	Sales float64 `json:"sales"`
	Month string  `json:"month"`
}

func autoSalaries(txs []models.Transaction) []AutoSalary {
	out := make([]AutoSalary, 0, len(txs))
	for _, tx := range txs {
		name := strings.TrimSpace(tx.Description)
		if name == "" {
			name = "기타"
		}
		amt := tx.Amount
		if amt < 0 {
			amt = -amt
		}
		out = append(out, AutoSalary{
			Name:  name,
			Rank:  models.RankDesigner,
			Base:  amt,
			Month: tx.TxDate.Format("2006-01"),
		})
	}
	return out
}

// AutoLoad 월급 거래로 급여 후보 만들기
// @Summary 급여 자동 불러오기
// @Description 카테고리에 월급이 들어간 거래를 건별로 급여 후보로 돌려준다.
// @Tags 급여
// @Produce json
// @Security BearerAuth
// @Param branch query string true "지점"
// @Param start query string true "시작월 YYYY-MM"
// @Param end query string true "종료월 YYYY-MM"
// @Success 200 {object} Response{data=[]AutoSalary}
// @Router /api/v1/transactions/salary_auto_load [get]
func (h *SalaryHandler) AutoLoad(c *gin.Context) {
	var q AutoLoadQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	from, to, err := monthSpan(q.Start, q.End)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	var txs []models.Transaction
	err = h.owned(c).
		Where("branch LIKE ? AND tx_date >= ? AND tx_date < ? AND category LIKE ?",
			"%"+strings.TrimSpace(q.Branch)+"%", from, to, "%"+models.CategorySalary+"%").
		Order("tx_date ASC, id ASC").
		Find(&txs).Error
	if err != nil {
		h.internal(c, "급여 거래 조회 실패", err)
		return
	}
	Success(c, autoSalaries(txs))
}
