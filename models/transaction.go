package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction 통장 거래 한 줄
type Transaction struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UserID           uint           `json:"user_id" gorm:"index;not null"`
	UploadID         uint           `json:"upload_id" gorm:"index"`
	Branch           string         `json:"branch" gorm:"size:100;index"`
	TxDate           time.Time      `json:"tx_date" gorm:"index;not null"`
	Description      string         `json:"description" gorm:"size:255"`
	Memo             string         `json:"memo" gorm:"size:255"`
	Amount           float64        `json:"amount" gorm:"type:decimal(15,2);not null;default:0"`
	Balance          *float64       `json:"balance" gorm:"type:decimal(15,2)"`
	Category         string         `json:"category" gorm:"size:100;not null;default:'미분류';index"`
	CategoryL1       string         `json:"category_l1,omitempty" gorm:"size:100"`
	CategoryL2       string         `json:"category_l2,omitempty" gorm:"size:100"`
	CategoryL3       string         `json:"category_l3,omitempty" gorm:"size:100"`
	VendorNormalized *string        `json:"vendor_normalized" gorm:"size:255;index"`
	IsFixed          bool           `json:"is_fixed" gorm:"default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 테이블명
func (Transaction) TableName() string {
	return "transactions"
}
