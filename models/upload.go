package models

import "time"

// 업로드 상태
const (
	UploadStatusProcessed = "processed"
)

// Upload 한 파일에서 잘라낸 (지점, 연, 월) 단위 업로드 묶음
type Upload struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	BatchToken       string    `json:"batch_token" gorm:"size:36;index"`
	Branch           string    `json:"branch" gorm:"size:100;index"`
	PeriodYear       int       `json:"period_year" gorm:"index"`
	PeriodMonth      int       `json:"period_month" gorm:"index"`
	StartMonth       string    `json:"start_month,omitempty" gorm:"size:7"`
	EndMonth         string    `json:"end_month,omitempty" gorm:"size:7"`
	OriginalFilename string    `json:"original_filename" gorm:"size:255"`
	TotalRows        int       `json:"total_rows"`
	Status           string    `json:"status" gorm:"size:20;default:processed"`
	CreatedAt        time.Time `json:"created_at"`

	// 조회 시 계산되는 값
	UnclassifiedRows int64 `json:"unclassified_rows" gorm:"-"`
}

// TableName 테이블명
func (Upload) TableName() string {
	return "uploads"
}
