package api

import (
	"errors"
	"fmt"
	"time"

	"salonledger/config"
	"salonledger/logger"
	"salonledger/middleware"
	"salonledger/models"
	"salonledger/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps 핸들러가 공유하는 의존성. main 에서 한 번 만들어 주입한다.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	JWT      *middleware.JWTManager
	Narrator service.Narrator
	Email    *service.EmailService
}

// internal 저장소 오류를 500 으로 응답한다. release 모드에서는 상세 내용을 숨긴다.
func (d *Deps) internal(c *gin.Context, fallback string, err error) {
	d.log(c).Error().Err(err).Msg(fallback)
	InternalError(c, d.Config.SafeErrorMessage(err, fallback))
}

func (d *Deps) log(c *gin.Context) *zerolog.Logger {
	l := logger.FromContext(c.Request.Context())
	return &l
}

// scoped 사용자 범위 조건. admin, viewer 는 전체 조회
func (d *Deps) scoped(c *gin.Context) *gorm.DB {
	q := d.DB.WithContext(c.Request.Context())
	if models.CanReadAll(middleware.GetCurrentRole(c)) {
		return q
	}
	return q.Where("user_id = ?", middleware.GetCurrentUserID(c))
}

// owned 본인 데이터만
func (d *Deps) owned(c *gin.Context) *gorm.DB {
	return d.DB.WithContext(c.Request.Context()).Where("user_id = ?", middleware.GetCurrentUserID(c))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// parseMonth YYYY-MM 을 해당 월 1일로
func parseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("월 형식이 올바르지 않습니다 (YYYY-MM): %s", s)
	}
	return t, nil
}

// monthSpan [start 월 1일, end 다음 달 1일)
func monthSpan(start, end string) (time.Time, time.Time, error) {
	from, err := parseMonth(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseMonth(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("종료월이 시작월보다 빠릅니다")
	}
	return from, to.AddDate(0, 1, 0), nil
}
