package api

import (
	"strconv"
	"strings"

	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
)

// RuleHandler 분류 규칙 처리기
type RuleHandler struct {
	*Deps
}

// NewRuleHandler 규칙 처리기 생성
func NewRuleHandler(d *Deps) *RuleHandler {
	return &RuleHandler{Deps: d}
}

// RuleRequest 규칙 생성 요청
type RuleRequest struct {
	Keyword  string `json:"keyword" binding:"required,max=100" example:"스타벅스"`
	Target   string `json:"target" binding:"omitempty,oneof=vendor description memo any" example:"any"`
	Category string `json:"category" binding:"required,max=100" example:"카페"`
	IsFixed  *bool  `json:"is_fixed"`
	Priority *int   `json:"priority" example:"100"`
	IsActive *bool  `json:"is_active"`
}

// RuleUpdateRequest 규칙 수정 요청. 보낸 필드만 바뀐다.
type RuleUpdateRequest struct {
	Keyword  *string `json:"keyword" binding:"omitempty,min=1,max=100"`
	Target   *string `json:"target" binding:"omitempty,oneof=vendor description memo any"`
	Category *string `json:"category" binding:"omitempty,min=1,max=100"`
	IsFixed  *bool   `json:"is_fixed"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"is_active"`
}

// ListRules 규칙 목록
// @Summary 규칙 목록
// @Description 우선순위 내림차순, 같은 우선순위는 먼저 만든 순서
// @Tags 규칙
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Rule}
// @Router /api/v1/rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	list := []models.Rule{}
	if err := h.owned(c).Order("priority DESC, id ASC").Find(&list).Error; err != nil {
		h.internal(c, "규칙 조회 실패", err)
		return
	}
	Success(c, list)
}

// CreateRule 규칙 추가
// @Summary 규칙 추가
// @Tags 규칙
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RuleRequest true "규칙"
// @Success 200 {object} Response{data=models.Rule}
// @Failure 400 {object} Response "요청 오류"
// @Router /api/v1/rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		BadRequest(c, "키워드가 비어 있습니다")
		return
	}

	rule := models.Rule{
		UserID:   middleware.GetCurrentUserID(c),
		Keyword:  keyword,
		Target:   models.TargetAny,
		Category: strings.TrimSpace(req.Category),
		IsFixed:  req.IsFixed,
		Priority: 100,
		IsActive: true,
	}
	if req.Target != "" {
		rule.Target = req.Target
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&rule).Error; err != nil {
		h.internal(c, "규칙 저장 실패", err)
		return
	}
	SuccessWithMessage(c, "규칙 추가 완료", rule)
}

// UpdateRule 규칙 수정
// @Summary 규칙 수정
// @Tags 규칙
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "규칙 ID"
// @Param request body RuleUpdateRequest true "변경할 값"
// @Success 200 {object} Response{data=models.Rule}
// @Failure 404 {object} Response "없음"
// @Router /api/v1/rules/{id} [put]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 ID 입니다")
		return
	}
	var req RuleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}

	var rule models.Rule
	if err := h.owned(c).First(&rule, id).Error; err != nil {
		if isNotFound(err) {
			NotFound(c, "규칙을 찾을 수 없습니다")
			return
		}
		h.internal(c, "규칙 조회 실패", err)
		return
	}

	updates := map[string]interface{}{}
	if req.Keyword != nil {
		updates["keyword"] = strings.TrimSpace(*req.Keyword)
	}
	if req.Target != nil {
		updates["target"] = *req.Target
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.IsFixed != nil {
		updates["is_fixed"] = *req.IsFixed
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		Success(c, rule)
		return
	}

	if err := h.DB.WithContext(c.Request.Context()).Model(&rule).Updates(updates).Error; err != nil {
		h.internal(c, "규칙 수정 실패", err)
		return
	}
	SuccessWithMessage(c, "규칙 수정 완료", rule)
}

// DeleteRule 규칙 삭제
// @Summary 규칙 삭제
// @Tags 규칙
// @Produce json
// @Security BearerAuth
// @Param id path int true "규칙 ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "없음"
// @Router /api/v1/rules/{id} [delete]
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 ID 입니다")
		return
	}
	res := h.owned(c).Delete(&models.Rule{}, id)
	if res.Error != nil {
		h.internal(c, "규칙 삭제 실패", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		NotFound(c, "규칙을 찾을 수 없습니다")
		return
	}
	SuccessWithMessage(c, "삭제 완료", gin.H{"id": id})
}
