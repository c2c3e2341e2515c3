package models

import (
	"fmt"
	"time"
)

// 자산 기록 방향/유형
const (
	AssetTypeIncome    = "수입"
	AssetTypeDeposit   = "예적금"
	DirectionIncrease  = "증가"
	DirectionDecrease  = "감소"
	AutoRegisterSuffix = "자동등록"
)

// AssetLog 자산 변동 기록
type AssetLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Branch    string    `json:"branch" gorm:"size:100;index"`
	Type      string    `json:"type" gorm:"size:20"`
	Direction string    `json:"direction" gorm:"size:10"`
	Category  string    `json:"category" gorm:"size:100"`
	Amount    float64   `json:"amount" gorm:"type:decimal(15,2)"`
	Memo      string    `json:"memo" gorm:"size:255;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName 테이블명
func (AssetLog) TableName() string {
	return "assets_log"
}

// Signed 방향을 반영한 금액
func (a AssetLog) Signed() float64 {
	if a.Direction == DirectionDecrease {
		return -a.Amount
	}
	return a.Amount
}

// MonthEndBalanceMemo 월말 잔액 자동등록 메모
func MonthEndBalanceMemo(year, month int) string {
	return fmt.Sprintf("%d년 %d월 말 잔액 기준 %s", year, month, AutoRegisterSuffix)
}
