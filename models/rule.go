package models

import "time"

// 규칙 매칭 대상
const (
	TargetVendor      = "vendor"
	TargetDescription = "description"
	TargetMemo        = "memo"
	TargetAny         = "any"
)

// Rule 키워드 분류 규칙
type Rule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Keyword   string    `json:"keyword" gorm:"size:100;not null"`
	Target    string    `json:"target" gorm:"size:20;not null;default:any"`
	Category  string    `json:"category" gorm:"size:100;not null"`
	IsFixed   *bool     `json:"is_fixed"`
	Priority  int       `json:"priority" gorm:"not null;index"`
	IsActive  bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 테이블명
func (Rule) TableName() string {
	return "rules"
}

// ValidTarget 허용된 매칭 대상인지
func ValidTarget(t string) bool {
	switch t {
	case TargetVendor, TargetDescription, TargetMemo, TargetAny:
		return true
	}
	return false
}
