package models

import "time"

// 직급
const (
	RankIntern       = "인턴"
	RankDesigner     = "디자이너"
	RankManager      = "실장"
	RankVice         = "부원장"
	RankStoreManager = "매니저"
	RankDirector     = "대표원장"
	RankOwner        = "대표"
)

// DesignerSalary 직원 월 급여 기록. (user, branch, name, month) 단위로 유일
type DesignerSalary struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_salary_key;not null"`
	Branch      string    `json:"branch" gorm:"size:100;uniqueIndex:idx_salary_key"`
	Name        string    `json:"name" gorm:"size:50;uniqueIndex:idx_salary_key"`
	Rank        string    `json:"rank" gorm:"size:20"`
	Month       string    `json:"month" gorm:"size:7;uniqueIndex:idx_salary_key"`
	BaseAmount  float64   `json:"base_amount" gorm:"type:decimal(15,2)"`
	ExtraAmount float64   `json:"extra_amount" gorm:"type:decimal(15,2)"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(15,2)"`
	Sales       float64   `json:"sales" gorm:"type:decimal(15,2);default:0"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 테이블명
func (DesignerSalary) TableName() string {
	return "designer_salaries"
}

// Designer 지점별 직원 명단
type Designer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Branch    string    `json:"branch" gorm:"size:100;index"`
	Name      string    `json:"name" gorm:"size:50"`
	Rank      string    `json:"rank" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 테이블명
func (Designer) TableName() string {
	return "designers"
}
