package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// UserStatusLocked 잠김: 로그인 불가
	UserStatusLocked = "locked"
	// UserStatusActive 정상: 로그인 가능
	UserStatusActive = "active"
)

// 역할. admin/viewer 는 모든 사용자의 데이터를 조회할 수 있다.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User 사용자 (지점 운영 계정)
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password  string         `json:"-" gorm:"size:255;not null"`
	Email     string         `json:"email" gorm:"size:100"`
	Role      string         `json:"role" gorm:"size:20;default:owner;index"`
	Status    string         `json:"status" gorm:"size:20;default:active;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 테이블명
func (User) TableName() string {
	return "users"
}

// CanReadAll 모든 사용자 데이터 조회 권한 여부
func CanReadAll(role string) bool {
	return role == RoleAdmin || role == RoleViewer
}
