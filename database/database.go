// Package database gorm 연결과 스키마 마이그레이션
package database

import (
	"fmt"
	"strings"

	"salonledger/config"
	"salonledger/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector 설정의 driver 에 맞는 gorm 방언
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "mysql":
		charset := cfg.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			charset,
		)
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Seoul",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBName, sslmode)
		return postgres.Open(dsn), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "salonledger.db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("지원하지 않는 database.driver: %s", cfg.Driver)
	}
}

// LogLevel 설정 문자열을 gorm 로그 레벨로 변환
func LogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Open 연결 후 마이그레이션까지 수행
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("마이그레이션 실패: %w", err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("데이터베이스 초기화 완료")
	return db, nil
}

// Migrate 테이블 자동 생성 및 이전 데이터 보정
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Branch{},
		&models.Upload{},
		&models.Transaction{},
		&models.Rule{},
		&models.DesignerSalary{},
		&models.Designer{},
		&models.AssetLog{},
		&models.SalonMonthlyData{},
		&models.AnalysisHistory{},
	); err != nil {
		return err
	}

	// status 컬럼이 없던 시절의 계정은 active 로 본다
	return db.Model(&models.User{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.UserStatusActive).Error
}
