package ingest

import (
	"context"
	"errors"

	"salonledger/models"

	"gorm.io/gorm"
)

// GormStore gorm 기반 Store 구현
type GormStore struct {
	db        *gorm.DB
	chunkSize int
}

// NewGormStore 저장소 생성
func NewGormStore(db *gorm.DB, chunkSize int) *GormStore {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &GormStore{db: db, chunkSize: chunkSize}
}

// EnsureBranch 지점이 없으면 등록
func (s *GormStore) EnsureBranch(ctx context.Context, userID uint, name string) error {
	var branch models.Branch
	err := s.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&branch).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	branch = models.Branch{UserID: userID, Name: name}
	return s.db.WithContext(ctx).Create(&branch).Error
}

// ActiveRules 활성 규칙을 우선순위 내림차순, id 오름차순으로 조회
func (s *GormStore) ActiveRules(ctx context.Context, userID uint) ([]models.Rule, error) {
	var list []models.Rule
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("priority DESC, id ASC").
		Find(&list).Error
	return list, err
}

// SaveBatch 업로드 묶음과 거래를 한 트랜잭션으로 저장
func (s *GormStore) SaveBatch(ctx context.Context, upload *models.Upload, txs []models.Transaction, replace bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replace {
			if err := deletePriorBatches(tx, upload); err != nil {
				return err
			}
		}
		if err := tx.Create(upload).Error; err != nil {
			return err
		}
		if len(txs) == 0 {
			return nil
		}
		for i := range txs {
			txs[i].UploadID = upload.ID
		}
		return tx.CreateInBatches(txs, s.chunkSize).Error
	})
}

func deletePriorBatches(tx *gorm.DB, upload *models.Upload) error {
	var ids []uint
	err := tx.Model(&models.Upload{}).
		Where("user_id = ? AND branch = ? AND period_year = ? AND period_month = ?",
			upload.UserID, upload.Branch, upload.PeriodYear, upload.PeriodMonth).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Unscoped().Where("upload_id IN ?", ids).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Upload{}).Error
}

// ReplaceAssetSnapshot 같은 지점, 같은 메모의 자동등록 기록을 교체
func (s *GormStore) ReplaceAssetSnapshot(ctx context.Context, entry *models.AssetLog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND branch = ? AND memo = ?", entry.UserID, entry.Branch, entry.Memo).
			Delete(&models.AssetLog{}).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// DeleteUpload 업로드 묶음과 소속 거래를 삭제한다. 다른 사용자의 묶음이면 gorm.ErrRecordNotFound.
func DeleteUpload(ctx context.Context, db *gorm.DB, userID, uploadID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var upload models.Upload
		if err := tx.Where("id = ? AND user_id = ?", uploadID, userID).First(&upload).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("upload_id = ?", upload.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&upload).Error
	})
}
