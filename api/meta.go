package api

import (
	"sort"
	"strings"

	"salonledger/ingest"
	"salonledger/middleware"
	"salonledger/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MetaHandler 지점, 직원, 카테고리 목록 처리기
type MetaHandler struct {
	*Deps
}

// NewMetaHandler 메타 처리기 생성
func NewMetaHandler(d *Deps) *MetaHandler {
	return &MetaHandler{Deps: d}
}

const suggestionLimit = 50

// ListBranches 지점 목록
// @Summary 지점 목록
// @Description 등록된 지점과 거래에 나온 지점을 합쳐 이름순으로 돌려준다.
// @Tags 메타
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]string}
// @Router /api/v1/meta/branches [get]
func (h *MetaHandler) ListBranches(c *gin.Context) {
	var registered, seen []string
	if err := h.scoped(c).Model(&models.Branch{}).Distinct().Pluck("name", &registered).Error; err != nil {
		h.internal(c, "지점 조회 실패", err)
		return
	}
	if err := h.scoped(c).Model(&models.Transaction{}).Distinct().Pluck("branch", &seen).Error; err != nil {
		h.internal(c, "지점 조회 실패", err)
		return
	}

	set := map[string]struct{}{}
	for _, name := range append(registered, seen...) {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	Success(c, names)
}

// BranchRequest 지점 등록
type BranchRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"강남점"`
}

// CreateBranch 지점 등록
// @Summary 지점 등록
// @Tags 메타
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BranchRequest true "지점"
// @Success 200 {object} Response
// @Router /api/v1/meta/branches [post]
func (h *MetaHandler) CreateBranch(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		BadRequest(c, "지점명이 비어 있습니다")
		return
	}
	store := ingest.NewGormStore(h.DB, h.Config.Ingest.ChunkSize)
	if err := store.EnsureBranch(c.Request.Context(), middleware.GetCurrentUserID(c), name); err != nil {
		h.internal(c, "지점 등록 실패", err)
		return
	}
	Success(c, gin.H{"name": name})
}

// CategorySuggestions 자주 쓰는 카테고리
// @Summary 카테고리 추천
// @Description 미분류를 뺀 카테고리를 사용 빈도순으로 최대 50개
// @Tags 메타
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]string}
// @Router /api/v1/meta/category-suggestions [get]
func (h *MetaHandler) CategorySuggestions(c *gin.Context) {
	names := []string{}
	err := h.owned(c).Model(&models.Transaction{}).
		Where("category <> ? AND category <> ''", models.CategoryUncategorized).
		Group("category").
		Order("COUNT(*) DESC, category ASC").
		Limit(suggestionLimit).
		Pluck("category", &names).Error
	if err != nil {
		h.internal(c, "카테고리 조회 실패", err)
		return
	}
	Success(c, names)
}

// DesignerEntry 직원 한 명
type DesignerEntry struct {
	Name string `json:"name" binding:"required,max=50"`
	Rank string `json:"rank" binding:"max=20"`
}

// DesignersRequest 직원 명단 교체
type DesignersRequest struct {
	Branch    string          `json:"branch" binding:"required,max=100"`
	Designers []DesignerEntry `json:"designers" binding:"dive"`
}

// ListDesigners 지점 직원 명단
// @Summary 직원 명단
// @Tags 메타
// @Produce json
// @Security BearerAuth
// @Param branch query string true "지점"
// @Success 200 {object} Response
// @Router /api/v1/meta/designers [get]
func (h *MetaHandler) ListDesigners(c *gin.Context) {
	branch := strings.TrimSpace(c.Query("branch"))
	if branch == "" {
		BadRequest(c, "branch 가 필요합니다")
		return
	}
	var list []models.Designer
	if err := h.owned(c).Where("branch = ?", branch).Order("id ASC").Find(&list).Error; err != nil {
		h.internal(c, "직원 조회 실패", err)
		return
	}
	out := make([]DesignerEntry, 0, len(list))
	for _, d := range list {
		out = append(out, DesignerEntry{Name: d.Name, Rank: d.Rank})
	}
	Success(c, gin.H{"designers": out})
}

// SaveDesigners 직원 명단 교체
// @Summary 직원 명단 저장
// @Description 지점의 기존 명단을 지우고 새로 넣는다. 직급이 없으면 디자이너.
// @Tags 메타
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DesignersRequest true "명단"
// @Success 200 {object} Response
// @Router /api/v1/meta/designers [post]
func (h *MetaHandler) SaveDesigners(c *gin.Context) {
	var req DesignersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	userID := middleware.GetCurrentUserID(c)
	branch := strings.TrimSpace(req.Branch)

	rows := make([]models.Designer, 0, len(req.Designers))
	for _, d := range req.Designers {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		rank := strings.TrimSpace(d.Rank)
		if rank == "" {
			rank = models.RankDesigner
		}
		rows = append(rows, models.Designer{UserID: userID, Branch: branch, Name: name, Rank: rank})
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND branch = ?", userID, branch).Delete(&models.Designer{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		h.internal(c, "직원 명단 저장 실패", err)
		return
	}
	Success(c, gin.H{"ok": true, "count": len(rows)})
}
