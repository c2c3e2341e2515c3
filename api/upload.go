package api

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"salonledger/ingest"
	"salonledger/ledger"
	"salonledger/middleware"
	"salonledger/models"
	"salonledger/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadHandler 명세서 업로드 처리기
type UploadHandler struct {
	*Deps
}

// NewUploadHandler 업로드 처리기 생성
func NewUploadHandler(d *Deps) *UploadHandler {
	return &UploadHandler{Deps: d}
}

// UploadForm 업로드 폼
type UploadForm struct {
	Branch      string `form:"branch" binding:"required,max=100"`
	PeriodYear  int    `form:"period_year" binding:"required,min=2000,max=2100"`
	PeriodMonth int    `form:"period_month" binding:"required,min=1,max=12"`
	StartMonth  string `form:"start_month"`
	EndMonth    string `form:"end_month"`
}

// Upload 명세서 업로드
// @Summary 통장 명세서 업로드
// @Description xlsx/xls/csv 명세서를 정규화, 분류하고 월 단위로 저장한 뒤 처리 결과를 xlsx 로 돌려준다.
// @Tags 업로드
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param file formData file true "명세서 파일"
// @Param branch formData string true "지점"
// @Param period_year formData int true "연도"
// @Param period_month formData int true "월"
// @Param start_month formData string false "시작월 YYYY-MM"
// @Param end_month formData string false "종료월 YYYY-MM"
// @Success 200 {file} file "처리 결과"
// @Failure 400 {object} Response "요청 오류"
// @Failure 500 {object} Response "서버 오류"
// @Router /api/v1/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	var form UploadForm
	if err := c.ShouldBind(&form); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "파일이 필요합니다")
		return
	}
	limit := int64(h.Config.Ingest.MaxUploadMB) << 20
	if limit > 0 && header.Size > limit {
		BadRequest(c, fmt.Sprintf("파일은 %dMB 이하여야 합니다", h.Config.Ingest.MaxUploadMB))
		return
	}
	f, err := header.Open()
	if err != nil {
		BadRequest(c, "파일을 열 수 없습니다")
		return
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		BadRequest(c, "파일을 읽을 수 없습니다")
		return
	}

	pipeline := ingest.NewPipeline(
		ingest.NewGormStore(h.DB, h.Config.Ingest.ChunkSize),
		ingest.Options{ChunkSize: h.Config.Ingest.ChunkSize, ReplaceExisting: h.Config.Ingest.ReplaceExisting},
	)
	res, err := pipeline.Run(c.Request.Context(), ingest.Request{
		UserID:      middleware.GetCurrentUserID(c),
		Branch:      strings.TrimSpace(form.Branch),
		Filename:    header.Filename,
		Content:     content,
		PeriodYear:  form.PeriodYear,
		PeriodMonth: form.PeriodMonth,
		StartMonth:  form.StartMonth,
		EndMonth:    form.EndMonth,
	})
	switch {
	case errors.Is(err, ingest.ErrNoTransactions),
		errors.Is(err, ingest.ErrInvalidPeriod),
		errors.Is(err, ledger.ErrUnreadable):
		BadRequest(c, err.Error())
		return
	case err != nil:
		h.internal(c, "업로드 처리 실패", err)
		return
	}

	buf, err := service.ProcessedWorkbook(res)
	if err != nil {
		h.internal(c, "결과 파일 생성 실패", err)
		return
	}

	base := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	c.Header("Content-Disposition", service.ContentDisposition("processed_"+base+".xlsx"))
	c.Header("X-Upload-Count", strconv.Itoa(len(res.Uploads)))
	c.Header("X-Unclassified-Rows", strconv.Itoa(res.Unclassified()))
	c.Header("X-Ingest-Warnings", strconv.Itoa(len(res.Warnings)))
	c.Data(200, service.XLSXContentType(), buf.Bytes())
}

// UploadQuery 업로드 목록 조건
type UploadQuery struct {
	Branch string `form:"branch"`
	Year   int    `form:"year"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type unclassifiedCount struct {
	UploadID uint
	Count    int64
}

// ListUploads 업로드 목록
// @Summary 업로드 목록
// @Description 최신순. 각 묶음의 미분류 건수는 조회 시점에 계산한다.
// @Tags 업로드
// @Produce json
// @Security BearerAuth
// @Param branch query string false "지점"
// @Param year query int false "연도"
// @Param month query int false "월"
// @Param limit query int false "개수 (기본 50)"
// @Param offset query int false "시작 위치"
// @Success 200 {object} Response{data=ListResponse}
// @Router /api/v1/uploads [get]
func (h *UploadHandler) ListUploads(c *gin.Context) {
	var q UploadQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "요청 형식 오류: "+err.Error())
		return
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	db := h.scoped(c).Model(&models.Upload{})
	if q.Branch != "" {
		db = db.Where("branch = ?", q.Branch)
	}
	if q.Year > 0 {
		db = db.Where("period_year = ?", q.Year)
	}
	if q.Month > 0 {
		db = db.Where("period_month = ?", q.Month)
	}
	db = db.Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		h.internal(c, "업로드 목록 조회 실패", err)
		return
	}

	uploads := []models.Upload{}
	if err := db.Order("created_at DESC, id DESC").Limit(q.Limit).Offset(q.Offset).Find(&uploads).Error; err != nil {
		h.internal(c, "업로드 목록 조회 실패", err)
		return
	}

	if len(uploads) > 0 {
		ids := make([]uint, len(uploads))
		for i, u := range uploads {
			ids[i] = u.ID
		}
		var counts []unclassifiedCount
		err := h.DB.WithContext(c.Request.Context()).Model(&models.Transaction{}).
			Select("upload_id, COUNT(*) AS count").
			Where("upload_id IN ? AND category = ?", ids, models.CategoryUncategorized).
			Group("upload_id").
			Scan(&counts).Error
		if err != nil {
			h.internal(c, "미분류 건수 조회 실패", err)
			return
		}
		byID := make(map[uint]int64, len(counts))
		for _, n := range counts {
			byID[n.UploadID] = n.Count
		}
		for i := range uploads {
			uploads[i].UnclassifiedRows = byID[uploads[i].ID]
		}
	}

	Success(c, ListResponse{Items: uploads, Count: int(total), Limit: q.Limit, Offset: q.Offset})
}

// DeleteUpload 업로드 묶음 삭제
// @Summary 업로드 묶음 삭제
// @Description 묶음에 속한 거래도 함께 삭제한다.
// @Tags 업로드
// @Produce json
// @Security BearerAuth
// @Param id path int true "업로드 ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "없음"
// @Router /api/v1/uploads/{id} [delete]
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "잘못된 ID 입니다")
		return
	}
	err = ingest.DeleteUpload(c.Request.Context(), h.DB, middleware.GetCurrentUserID(c), uint(id))
	if isNotFound(err) {
		NotFound(c, "업로드를 찾을 수 없습니다")
		return
	}
	if err != nil {
		h.internal(c, "업로드 삭제 실패", err)
		return
	}
	h.log(c).Info().Uint64("upload_id", id).Msg("업로드 삭제")
	SuccessWithMessage(c, "삭제 완료", gin.H{"id": id})
}
