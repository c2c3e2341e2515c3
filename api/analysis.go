package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"salonledger/breakeven"
	"salonledger/health"
	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler 손익분기, 재무 건강도 분석 처리기
type AnalysisHandler struct {
	*Deps
	now func() time.Time
}

// NewAnalysisHandler 분석 처리기 생성
func NewAnalysisHandler(d *Deps) *AnalysisHandler {
	return &AnalysisHandler{Deps: d, now: time.Now}
}

// AnalysisRequest 분석 요청
type AnalysisRequest struct {
	Branch     string `json:"branch" binding:"required,max=100" example:"강남점"`
	StartMonth string `json:"start_month" binding:"required" example:"2025-01"`
	EndMonth   string `json:"end_month" binding:"required" example:"2025-06"`
	// Narrate false 면 문장 생성을 건너뛴다
	Narrate *bool `json:"narrate"`
}

// HealthRequest 재무 건강도 분석 요청
type HealthRequest struct {
	AnalysisRequest
	// PrepaidOutstanding 미사용 정액권 잔액. 없으면 기간 중 판매-사용 차액
	PrepaidOutstanding *float64 `json:"prepaid_outstanding" binding:"omitempty,min=0"`
}

// AnalysisResponse 분석 응답
type AnalysisResponse struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Result        interface{} `json:"result"`
	Analysis      string      `json:"analysis"`
	AnalysisOK    bool        `json:"analysis_ok"`
	AnalysisError string      `json:"analysis_error,omitempty"`
}

func (r AnalysisRequest) period() string {
	if r.StartMonth == r.EndMonth {
		return r.StartMonth
	}
	return r.StartMonth + "~" + r.EndMonth
}

func (r AnalysisRequest) wantsNarration() bool {
	return r.Narrate == nil || *r.Narrate
}

// narrate 문장 생성 실패는 응답을 막지 않는다
func (h *AnalysisHandler) narrate(ctx context.Context, enabled bool, prompt string, resp *AnalysisResponse) {
	if !enabled {
		resp.AnalysisError = "문장 생성을 요청하지 않았습니다"
		return
	}
	text, err := h.Narrator.Narrate(ctx, prompt)
	if err != nil {
		resp.AnalysisError = err.Error()
		return
	}
	resp.Analysis = text
	resp.AnalysisOK = true
}

// save 분석 이력 저장. 제목: "<지점> / <날짜> / <기간> 분석"
func (h *AnalysisHandler) save(c *gin.Context, kind string, req AnalysisRequest, payload interface{}, resp *AnalysisResponse) error {
	resp.Title = fmt.Sprintf("%s / %s / %s 분석", req.Branch, h.now().Format("2006-01-02"), req.period())

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	rec := models.AnalysisHistory{
		UserID:     middleware.GetCurrentUserID(c),
		Branch:     req.Branch,
		Kind:       kind,
		Title:      resp.Title,
		StartMonth: req.StartMonth,
		EndMonth:   req.EndMonth,
		Payload:    string(payloadJSON),
		Result:     string(resultJSON),
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&rec).Error; err != nil {
		return err
	}
	resp.ID = rec.ID
	return nil
}

// BreakEven 직원별 손익분기 분석
// @Summary 손익분기 분석
// @Description 월별 실현매출 비율로 기간 고정비를 나누고, 직원별 분담액과 수수료율로 손익분기 매출을 구한다.
// @Tags 분석
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AnalysisRequest true "지점, 기간"
// @Success 200 {object} Response{data=AnalysisResponse}
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/analyses/break-even [post]
func (h *AnalysisHandler) BreakEven(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	from, to, err := monthSpan(req.StartMonth, req.EndMonth)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	monthly, err := h.monthlyData(c, req.Branch, req.StartMonth, req.EndMonth)
	if err != nil {
		h.internal(c, "월별 기록 조회 실패", err)
		return
	}
	txs, err := h.branchRange(c, req.Branch, from, to)
	if err != nil {
		h.internal(c, "거래 조회 실패", err)
		return
	}
	salaries, err := h.salaries(c, req.Branch, req.StartMonth, req.EndMonth)
	if err != nil {
		h.internal(c, "급여 조회 실패", err)
		return
	}
	var designers []models.Designer
	if err := h.scoped(c).Where("branch = ?", req.Branch).Order("id ASC").Find(&designers).Error; err != nil {
		h.internal(c, "직원 조회 실패", err)
		return
	}

	input := breakEvenInput(monthKeys(from, to), monthly, txs, salaries, designers)
	result := breakeven.Calculate(input)

	resp := AnalysisResponse{Result: result}
	h.narrate(c.Request.Context(), req.wantsNarration(), breakEvenPrompt(req.Branch, req.period(), result), &resp)
	if err := h.save(c, models.AnalysisKindBreakEven, req, gin.H{"request": req, "input": input}, &resp); err != nil {
		h.internal(c, "분석 저장 실패", err)
		return
	}

	h.log(c).Info().
		Str("branch", req.Branch).
		Int("lines", len(result.Lines)).
		Bool("analysis_ok", resp.AnalysisOK).
		Msg("손익분기 분석")
	Success(c, resp)
}

// Health 재무 건강도 분석
// @Summary 재무 건강도 분석
// @Description 월별 지표를 기준표와 비교해 A~E 등급을 매긴다. 현금 완충률과 부채비율은 마지막 달에 반영된다.
// @Tags 분석
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HealthRequest true "지점, 기간"
// @Success 200 {object} Response{data=AnalysisResponse}
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/analyses/health [post]
func (h *AnalysisHandler) Health(c *gin.Context) {
	var req HealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	from, to, err := monthSpan(req.StartMonth, req.EndMonth)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	monthly, err := h.monthlyData(c, req.Branch, req.StartMonth, req.EndMonth)
	if err != nil {
		h.internal(c, "월별 기록 조회 실패", err)
		return
	}
	txs, err := h.branchRange(c, req.Branch, from, to)
	if err != nil {
		h.internal(c, "거래 조회 실패", err)
		return
	}
	salaries, err := h.salaries(c, req.Branch, req.StartMonth, req.EndMonth)
	if err != nil {
		h.internal(c, "급여 조회 실패", err)
		return
	}
	cash, err := h.latestBalance(c, req.Branch, to)
	if err != nil {
		h.internal(c, "잔액 조회 실패", err)
		return
	}
	var assets []models.AssetLog
	if err := h.scoped(c).Where("branch = ? AND created_at < ?", req.Branch, to).Find(&assets).Error; err != nil {
		h.internal(c, "자산 기록 조회 실패", err)
		return
	}

	balance := health.Balance{
		Cash:               cash.Balance.InexactFloat64(),
		FixedDeposits:      fixedDeposits(assets),
		PrepaidOutstanding: prepaidOutstanding(monthly),
	}
	if req.PrepaidOutstanding != nil {
		balance.PrepaidOutstanding = *req.PrepaidOutstanding
	}
	months := healthMonths(monthKeys(from, to), monthly, txs, salaries)
	report := health.Evaluate(months, balance)

	resp := AnalysisResponse{Result: report}
	h.narrate(c.Request.Context(), req.wantsNarration(), healthPrompt(req.Branch, req.period(), report), &resp)
	payload := gin.H{"request": req, "months": months, "balance": balance}
	if err := h.save(c, models.AnalysisKindHealth, req.AnalysisRequest, payload, &resp); err != nil {
		h.internal(c, "분석 저장 실패", err)
		return
	}

	h.log(c).Info().
		Str("branch", req.Branch).
		Str("grade", report.FinalGrade).
		Bool("analysis_ok", resp.AnalysisOK).
		Msg("재무 건강도 분석")
	Success(c, resp)
}

// AnalysisQuery 분석 이력 조회 조건
type AnalysisQuery struct {
	Branch string `form:"branch"`
	Kind   string `form:"kind" binding:"omitempty,oneof=break_even health"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// ListAnalyses 분석 이력
// @Summary 분석 이력
// @Description 최신순. admin, viewer 는 모든 사용자의 이력을 본다. 목록에는 입력값(payload)이 빠진다.
// @Tags 분석
// @Produce json
// @Security BearerAuth
// @Param branch query string false "지점"
// @Param kind query string false "break_even | health"
// @Param limit query int false "개수 (기본 50)"
// @Param offset query int false "시작 위치"
// @Success 200 {object} Response{data=ListResponse}
// @Router /api/v1/analyses [get]
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	var q AnalysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	db := h.scoped(c)
	if q.Branch != "" {
		db = db.Where("branch = ?", q.Branch)
	}
	if q.Kind != "" {
		db = db.Where("kind = ?", q.Kind)
	}
	items := []models.AnalysisHistory{}
	err := db.Omit("payload").
		Order("created_at DESC, id DESC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&items).Error
	if err != nil {
		h.internal(c, "분석 이력 조회 실패", err)
		return
	}
	Success(c, ListResponse{Items: items, Count: len(items), Limit: q.Limit, Offset: q.Offset})
}

// GetAnalysis 분석 이력 한 건
// @Summary 분석 이력 상세
// @Tags 분석
// @Produce json
// @Security BearerAuth
// @Param id path int true "이력 ID"
// @Success 200 {object} Response{data=models.AnalysisHistory}
// @Failure 404 {object} Response "없음"
// @Router /api/v1/analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 ID 입니다")
		return
	}
	var rec models.AnalysisHistory
	if err := h.scoped(c).First(&rec, id).Error; err != nil {
		if isNotFound(err) {
			NotFound(c, "분석 이력을 찾을 수 없습니다")
			return
		}
		h.internal(c, "분석 이력 조회 실패", err)
		return
	}
	Success(c, rec)
}

// DeleteAnalysis 분석 이력 삭제 (admin)
// @Summary 분석 이력 삭제
// @Description admin 만 가능
// @Tags 분석
// @Produce json
// @Security BearerAuth
// @Param id path int true "이력 ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response "권한 없음"
// @Failure 404 {object} Response "없음"
// @Router /api/v1/analyses/{id} [delete]
func (h *AnalysisHandler) DeleteAnalysis(c *gin.Context) {
	if middleware.GetCurrentRole(c) != models.RoleAdmin {
		Forbidden(c, "권한이 없습니다")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 ID 입니다")
		return
	}
	res := h.DB.WithContext(c.Request.Context()).Delete(&models.AnalysisHistory{}, id)
	if res.Error != nil {
		h.internal(c, "분석 이력 삭제 실패", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "분석 이력을 찾을 수 없습니다")
		return
	}
	h.log(c).Info().Uint64("analysis_id", id).Msg("분석 이력 삭제")
	Success(c, gin.H{"id": id})
}
