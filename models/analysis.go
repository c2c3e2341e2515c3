package models

import (
	"time"

	"gorm.io/gorm"
)

// 분석 종류
const (
	AnalysisKindBreakEven = "break_even"
	AnalysisKindHealth    = "health"
)

// AnalysisHistory 저장된 분석 결과
type AnalysisHistory struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Branch     string         `json:"branch" gorm:"size:100;index"`
	Kind       string         `json:"kind" gorm:"size:20;index"`
	Title      string         `json:"title" gorm:"size:255"`
	StartMonth string         `json:"start_month" gorm:"size:7"`
	EndMonth   string         `json:"end_month" gorm:"size:7"`
	Payload    string         `json:"payload" gorm:"type:text"`
	Result     string         `json:"result" gorm:"type:text"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 테이블명
func (AnalysisHistory) TableName() string {
	return "analysis_histories"
}
