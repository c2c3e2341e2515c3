package api

import (
	"strconv"
	"strings"

	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
)

// AssetHandler 자산 변동 기록 처리기
type AssetHandler struct {
	*Deps
}

// NewAssetHandler 자산 처리기 생성
func NewAssetHandler(d *Deps) *AssetHandler {
	return &AssetHandler{Deps: d}
}

// AssetRequest 자산 기록 추가
type AssetRequest struct {
	Type      string  `json:"type" binding:"required,max=20" example:"예적금"`
	Direction string  `json:"direction" binding:"required,oneof=증가 감소" example:"증가"`
	Category  string  `json:"category" binding:"max=100" example:"정기예금"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"5000000"`
	Memo      string  `json:"memo" binding:"max=255"`
	Branch    string  `json:"branch" binding:"max=100"`
}

func (h *AssetHandler) list(c *gin.Context, autoOnly bool) {
	items := []models.AssetLog{}
	db := h.owned(c)
	if b := strings.TrimSpace(c.Query("branch")); b != "" {
		db = db.Where("branch = ?", b)
	}
	if autoOnly {
		db = db.Where("memo LIKE ?", "%"+models.AutoRegisterSuffix+"%")
	}
	if err := db.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		h.internal(c, "자산 기록 조회 실패", err)
		return
	}
	Success(c, gin.H{"items": items})
}

// ListAssets 자산 기록 목록
// @Summary 자산 기록
// @Tags 자산
// @Produce json
// @Security BearerAuth
// @Param branch query string false "지점"
// @Success 200 {object} Response
// @Router /api/v1/assets_log [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	h.list(c, false)
}

// ListLiquid 유동자산 자동등록 기록
// @Summary 유동자산 (월말 잔액 자동등록)
// @Tags 자산
// @Produce json
// @Security BearerAuth
// @Param branch query string false "지점"
// @Success 200 {object} Response
// @Router /api/v1/assets_log/liquid [get]
func (h *AssetHandler) ListLiquid(c *gin.Context) {
	h.list(c, true)
}

// CreateAsset 자산 기록 추가
// @Summary 자산 기록 추가
// @Tags 자산
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssetRequest true "기록"
// @Success 200 {object} Response{data=models.AssetLog}
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/assets_log [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	entry := models.AssetLog{
		UserID:    middleware.GetCurrentUserID(c),
		Branch:    strings.TrimSpace(req.Branch),
		Type:      req.Type,
		Direction: req.Direction,
		Category:  req.Category,
		Amount:    req.Amount,
		Memo:      req.Memo,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
		h.internal(c, "자산 기록 저장 실패", err)
		return
	}
	Success(c, entry)
}

// DeleteAsset 자산 기록 삭제
// @Summary 자산 기록 삭제
// @Tags 자산
// @Produce json
// @Security BearerAuth
// @Param id path int true "기록 ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "없음"
// @Router /api/v1/assets_log/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 ID 입니다")
		return
	}
	res := h.owned(c).Delete(&models.AssetLog{}, id)
	if res.Error != nil {
		h.internal(c, "자산 기록 삭제 실패", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "자산 기록을 찾을 수 없습니다")
		return
	}
	Success(c, gin.H{"id": id})
}
