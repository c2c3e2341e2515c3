package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"salonledger/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ContextKey 컨텍스트 키 타입
type ContextKey string

// LoggerKey 요청 컨텍스트에 저장된 로거 키
const LoggerKey ContextKey = "logger"

// New 설정에 따라 로거 생성 (console | json)
func New(cfg config.LogConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// NewWithWriter 임의의 writer 로 JSON 로거 생성
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel 문자열을 zerolog 레벨로 변환, 알 수 없으면 info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithContext 컨텍스트에 로거 저장
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}

// FromContext 컨텍스트의 로거, 없으면 전역 로거
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return l
	}
	return log.Logger
}
