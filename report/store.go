package report

import (
	"context"

	"salonledger/models"

	"gorm.io/gorm"
)

// BatchSize 거래 조회 단위
const BatchSize = 1000

// Scope 조회 범위. AllOwners 가 true 면 사용자 조건 없이 조회한다 (admin, viewer).
type Scope struct {
	UserID    uint
	AllOwners bool
}

// LoadEntries 조건에 맞는 거래를 페이지 단위로 읽는다
func LoadEntries(ctx context.Context, db *gorm.DB, scope Scope, f Filter) ([]Entry, error) {
	from, to := f.Window()
	q := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("tx_date >= ? AND tx_date < ?", from, to)
	if !scope.AllOwners {
		q = q.Where("user_id = ?", scope.UserID)
	}
	if f.Branch != "" {
		q = q.Where("branch LIKE ?", "%"+f.Branch+"%")
	}

	entries := []Entry{}
	var batch []models.Transaction
	err := q.FindInBatches(&batch, BatchSize, func(tx *gorm.DB, _ int) error {
		for _, t := range batch {
			entries = append(entries, FromTransaction(t))
		}
		return nil
	}).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
