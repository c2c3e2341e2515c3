package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// AttemptLimiter 키(IP) 별 슬라이딩 윈도우 시도 횟수 제한
type AttemptLimiter struct {
	max    int
	window time.Duration

	mu       sync.Mutex
	attempts map[string][]time.Time
}

// NewAttemptLimiter ctx 가 끝나면 정리 고루틴도 멈춘다
func NewAttemptLimiter(ctx context.Context, maxAttempts int, window time.Duration) *AttemptLimiter {
	l := &AttemptLimiter{max: maxAttempts, window: window, attempts: map[string][]time.Time{}}
	go l.janitor(ctx)
	return l
}

func (l *AttemptLimiter) janitor(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key := range l.attempts {
				if kept := l.prune(key, now); len(kept) == 0 {
					delete(l.attempts, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// prune 윈도우 밖 기록을 버린다. mu 를 잡은 상태에서 호출
func (l *AttemptLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.attempts[key] = kept
	return kept
}

// Allow 시도를 기록하고 허용 여부를 돌려준다
func (l *AttemptLimiter) Allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.prune(key, now)) >= l.max {
		return false
	}
	l.attempts[key] = append(l.attempts[key], now)
	return true
}

// Middleware 초과 시 429
func (l *AttemptLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "로그인 시도가 너무 잦습니다. 잠시 후 다시 시도하세요",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
