package api

import (
	"sort"
	"strings"
	"time"

	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler 거래 관리 처리기
type TransactionHandler struct {
	*Deps
}

// NewTransactionHandler 거래 처리기 생성
func NewTransactionHandler(d *Deps) *TransactionHandler {
	return &TransactionHandler{Deps: d}
}

const managePageSize = 1000

// ManageQuery 거래 관리 조회 조건
type ManageQuery struct {
	Branch string `form:"branch"`
	Year   int    `form:"year"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
}

// ListTransactions 거래 관리 목록
// @Summary 거래 목록
// @Description admin, viewer 는 모든 사용자의 거래를 본다. 지점은 부분 일치.
// @Tags 거래
// @Produce json
// @Security BearerAuth
// @Param branch query string false "지점"
// @Param year query int false "연도"
// @Param month query int false "월 (year 와 함께)"
// @Success 200 {object} Response{data=ListResponse}
// @Router /api/v1/transactions/manage [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ManageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}

	db := h.scoped(c).Model(&models.Transaction{})
	if b := strings.TrimSpace(q.Branch); b != "" {
		db = db.Where("branch LIKE ?", "%"+b+"%")
	}
	switch {
	case q.Year > 0 && q.Month > 0:
		from := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, time.Local)
		db = db.Where("tx_date >= ? AND tx_date < ?", from, from.AddDate(0, 1, 0))
	case q.Year > 0:
		from := time.Date(q.Year, 1, 1, 0, 0, 0, 0, time.Local)
		db = db.Where("tx_date >= ? AND tx_date < ?", from, from.AddDate(1, 0, 0))
	}

	items := []models.Transaction{}
	var page []models.Transaction
	err := db.FindInBatches(&page, managePageSize, func(tx *gorm.DB, batch int) error {
		items = append(items, page...)
		return nil
	}).Error
	if err != nil {
		h.internal(c, "거래 조회 실패", err)
		return
	}
	// 배치는 id 순이라 날짜 역순 정렬은 메모리에서 한다
	sort.SliceStable(items, func(i, j int) bool { return items[i].TxDate.After(items[j].TxDate) })

	Success(c, ListResponse{Items: items, Count: len(items), Limit: managePageSize})
}

// AssignRequest 카테고리 일괄 지정
type AssignRequest struct {
	TransactionIDs []uint  `json:"transaction_ids" binding:"required,min=1"`
	Category       string  `json:"category" binding:"required,max=100" example:"카페"`
	CategoryL1     string  `json:"category_l1" binding:"max=100"`
	CategoryL2     string  `json:"category_l2" binding:"max=100"`
	CategoryL3     string  `json:"category_l3" binding:"max=100"`
	Memo           *string `json:"memo"`
	IsFixed        *bool   `json:"is_fixed"`
	SaveRule       bool    `json:"save_rule"`
}

// AssignResponse 일괄 지정 결과
type AssignResponse struct {
	Updated int64        `json:"updated"`
	Rule    *models.Rule `json:"rule,omitempty"`
}

// Assign 카테고리 일괄 지정
// @Summary 카테고리 수동 지정
// @Description save_rule 이면 첫 거래의 거래처 키(없으면 내용, 메모)로 규칙을 만든다.
// @Tags 거래
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssignRequest true "지정 내용"
// @Success 200 {object} Response{data=AssignResponse}
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/transactions/assign [post]
func (h *TransactionHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		BadRequest(c, "카테고리가 비어 있습니다")
		return
	}

	userID := middleware.GetCurrentUserID(c)
	updates := map[string]interface{}{
		"category":    category,
		"category_l1": req.CategoryL1,
		"category_l2": req.CategoryL2,
		"category_l3": req.CategoryL3,
	}
	if req.Memo != nil {
		updates["memo"] = *req.Memo
	}
	if req.IsFixed != nil {
		updates["is_fixed"] = *req.IsFixed
	}

	var resp AssignResponse
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id IN ? AND user_id = ?", req.TransactionIDs, userID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		resp.Updated = res.RowsAffected
		if !req.SaveRule {
			return nil
		}

		var first models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", req.TransactionIDs[0], userID).First(&first).Error; err != nil {
			return err
		}
		keyword := learnedKeyword(first)
		if keyword == "" {
			return nil
		}
		rule := models.Rule{
			UserID:   userID,
			Keyword:  keyword,
			Target:   models.TargetAny,
			Category: category,
			IsFixed:  req.IsFixed,
			Priority: 100,
			IsActive: true,
		}
		if err := tx.Create(&rule).Error; err != nil {
			return err
		}
		resp.Rule = &rule
		return nil
	})
	if isNotFound(err) {
		NotFound(c, "거래를 찾을 수 없습니다")
		return
	}
	if err != nil {
		h.internal(c, "카테고리 지정 실패", err)
		return
	}

	h.log(c).Info().Int64("updated", resp.Updated).Bool("save_rule", resp.Rule != nil).Msg("카테고리 지정")
	Success(c, resp)
}

// learnedKeyword 거래처 키, 내용, 메모 순으로 첫 비어 있지 않은 값
func learnedKeyword(tx models.Transaction) string {
	if tx.VendorNormalized != nil {
		if v := strings.TrimSpace(*tx.VendorNormalized); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(tx.Description); v != "" {
		return v
	}
	return strings.TrimSpace(tx.Memo)
}

// MarkFixedRequest 고정비 표시
type MarkFixedRequest struct {
	TransactionID uint `json:"transaction_id" binding:"required"`
	IsFixed       bool `json:"is_fixed"`
}

// MarkFixed 고정비 여부 변경
// @Summary 고정비 표시
// @Tags 거래
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkFixedRequest true "대상"
// @Success 200 {object} Response
// @Failure 404 {object} Response "없음"
// @Router /api/v1/transactions/mark_fixed [post]
func (h *TransactionHandler) MarkFixed(c *gin.Context) {
	var req MarkFixedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}

	var tx models.Transaction
	if err := h.owned(c).Select("id").First(&tx, req.TransactionID).Error; err != nil {
		if isNotFound(err) {
			NotFound(c, "거래를 찾을 수 없습니다")
			return
		}
		h.internal(c, "거래 조회 실패", err)
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Model(&tx).Update("is_fixed", req.IsFixed).Error; err != nil {
		h.internal(c, "고정비 표시 실패", err)
		return
	}
	Success(c, gin.H{"id": tx.ID, "is_fixed": req.IsFixed})
}

// RangeRequest 지점 + 월 범위
type RangeRequest struct {
	Branch     string `json:"branch" binding:"required"`
	StartMonth string `json:"start_month" binding:"required" example:"2025-01"`
	EndMonth   string `json:"end_month" binding:"required" example:"2025-06"`
}

// MonthlyExpense 월별 지출 요약
type MonthlyExpense struct {
	Month           string          `json:"month"`
	FixedExpense    decimal.Decimal `json:"fixed_expense"`
	VariableExpense decimal.Decimal `json:"variable_expense"`
	OwnerDividend   decimal.Decimal `json:"owner_dividend"`
}

// branchRange 지점의 [from, to) 거래
func (d *Deps) branchRange(c *gin.Context, branch string, from, to time.Time) ([]models.Transaction, error) {
	var list []models.Transaction
	err := d.scoped(c).
		Where("branch = ? AND tx_date >= ? AND tx_date < ?", branch, from, to).
		Order("tx_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

// monthKeys from 부터 to 직전 달까지 YYYY-MM
func monthKeys(from, to time.Time) []string {
	var keys []string
	for m := from; m.Before(to); m = m.AddDate(0, 1, 0) {
		keys = append(keys, m.Format("2006-01"))
	}
	return keys
}

// summarizeExpenses 월별 고정/변동 지출과 사업자배당. 지출은 양수로 돌려준다.
func summarizeExpenses(txs []models.Transaction, months []string) []MonthlyExpense {
	index := make(map[string]int, len(months))
	out := make([]MonthlyExpense, len(months))
	for i, m := range months {
		index[m] = i
		out[i] = MonthlyExpense{Month: m}
	}
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		i, ok := index[tx.TxDate.Format("2006-01")]
		if !ok {
			continue
		}
		amt := decimal.NewFromFloat(tx.Amount).Abs()
		switch {
		case tx.Category == models.CategoryOwnerDividend:
			out[i].OwnerDividend = out[i].OwnerDividend.Add(amt)
		case tx.IsFixed:
			out[i].FixedExpense = out[i].FixedExpense.Add(amt)
		default:
			out[i].VariableExpense = out[i].VariableExpense.Add(amt)
		}
	}
	return out
}

// Summary 월별 지출 요약
// @Summary 월별 고정/변동 지출
// @Description 사업자배당은 변동비에서 빼고 따로 집계한다.
// @Tags 거래
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RangeRequest true "지점, 기간"
// @Success 200 {object} Response{data=[]MonthlyExpense}
// @Router /api/v1/transactions/summary [post]
func (h *TransactionHandler) Summary(c *gin.Context) {
	var req RangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	from, to, err := monthSpan(req.StartMonth, req.EndMonth)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	txs, err := h.branchRange(c, req.Branch, from, to)
	if err != nil {
		h.internal(c, "거래 조회 실패", err)
		return
	}
	Success(c, summarizeExpenses(txs, monthKeys(from, to)))
}

// LatestBalanceRequest 월말 잔액 조회
type LatestBalanceRequest struct {
	Branch   string `json:"branch" binding:"required"`
	EndMonth string `json:"end_month" binding:"required" example:"2025-06"`
}

// LatestBalanceResponse 월말 잔액
type LatestBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
	Date    string          `json:"date,omitempty"`
	Message string          `json:"message,omitempty"`
}

// latestBalance end 직전까지 마지막 잔액 기록. 잔액이 0 원인 행도 기록으로 본다
func (d *Deps) latestBalance(c *gin.Context, branch string, end time.Time) (LatestBalanceResponse, error) {
	var tx models.Transaction
	err := d.scoped(c).
		Where("branch = ? AND tx_date < ? AND balance IS NOT NULL", branch, end).
		Order("tx_date DESC, id DESC").
		First(&tx).Error
	if isNotFound(err) {
		return LatestBalanceResponse{Balance: decimal.Zero, Message: "해당 기간 잔액 데이터 없음"}, nil
	}
	if err != nil {
		return LatestBalanceResponse{}, err
	}
	if tx.Balance == nil {
		return LatestBalanceResponse{Balance: decimal.Zero, Message: "해당 기간 잔액 데이터 없음"}, nil
	}
	return LatestBalanceResponse{
		Balance: decimal.NewFromFloat(*tx.Balance),
		Date:    tx.TxDate.Format("2006-01-02"),
	}, nil
}

// LatestBalance 월말 잔액
// @Summary 월말 잔액
// @Description end_month 말일까지 기록된 마지막 잔액
// @Tags 거래
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LatestBalanceRequest true "지점, 종료월"
// @Success 200 {object} Response{data=LatestBalanceResponse}
// @Router /api/v1/transactions/latest-balance [post]
func (h *TransactionHandler) LatestBalance(c *gin.Context) {
	var req LatestBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	month, err := parseMonth(req.EndMonth)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	resp, err := h.latestBalance(c, req.Branch, month.AddDate(0, 1, 0))
	if err != nil {
		h.internal(c, "잔액 조회 실패", err)
		return
	}
	Success(c, resp)
}

// businessInflow 내수금, 기타수입을 뺀 입금 합계
func businessInflow(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Amount <= 0 || isNonBusinessIncome(tx.Category) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(tx.Amount))
	}
	return total
}

func isNonBusinessIncome(category string) bool {
	for _, c := range models.NonBusinessIncomeCategories {
		if strings.Contains(category, c) {
			return true
		}
	}
	return false
}

// IncomeFiltered 사업 매출 유입
// @Summary 사업 매출 유입 합계
// @Description 내수금, 기타수입 카테고리를 제외한 입금 합계
// @Tags 거래
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RangeRequest true "지점, 기간"
// @Success 200 {object} Response
// @Router /api/v1/transactions/income-filtered [post]
func (h *TransactionHandler) IncomeFiltered(c *gin.Context) {
	var req RangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	from, to, err := monthSpan(req.StartMonth, req.EndMonth)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	txs, err := h.branchRange(c, req.Branch, from, to)
	if err != nil {
		h.internal(c, "거래 조회 실패", err)
		return
	}
	Success(c, gin.H{"bank_inflow": businessInflow(txs)})
}
