package models

import "time"

// Branch 지점
type Branch struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_branch_owner;not null"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex:idx_branch_owner;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 테이블명
func (Branch) TableName() string {
	return "branches"
}

// SalonMonthlyData 지점 월별 매출/방문 기록
type SalonMonthlyData struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_salon_month;not null"`
	Branch            string    `json:"branch" gorm:"size:100;uniqueIndex:idx_salon_month"`
	Month             string    `json:"month" gorm:"size:7;uniqueIndex:idx_salon_month"`
	CardSales         float64   `json:"card_sales" gorm:"type:decimal(15,2)"`
	PaySales          float64   `json:"pay_sales" gorm:"type:decimal(15,2)"`
	CashSales         float64   `json:"cash_sales" gorm:"type:decimal(15,2)"`
	AccountSales      float64   `json:"account_sales" gorm:"type:decimal(15,2)"`
	PassPaid          float64   `json:"pass_paid" gorm:"type:decimal(15,2)"`
	PassUsed          float64   `json:"pass_used" gorm:"type:decimal(15,2)"`
	VisitorsTotal     int       `json:"visitors_total"`
	ReturningVisitors int       `json:"returning_visitors"`
	WorkingDays       int       `json:"working_days"`
	Interns           int       `json:"interns"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName 테이블명
func (SalonMonthlyData) TableName() string {
	return "salon_monthly_data"
}

// TotalSales 카드+페이+현금+계좌 매출 합계
func (d SalonMonthlyData) TotalSales() float64 {
	return d.CardSales + d.PaySales + d.CashSales + d.AccountSales
}

// RealizedSales 실현매출 = 총매출 − 정액권 결제 + 정액권 차감
func (d SalonMonthlyData) RealizedSales() float64 {
	return d.TotalSales() - d.PassPaid + d.PassUsed
}
