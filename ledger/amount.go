package ledger

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountNoise = regexp.MustCompile(`[^0-9\-\.\+]`)

// CoerceAmount 숫자, 부호, 소수점 외 문자를 제거한 뒤 파싱한다.
// 빈 값이나 파싱 실패는 0.
func CoerceAmount(s string) decimal.Decimal {
	cleaned := amountNoise.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceAny 저장소나 JSON 에서 넘어온 임의 타입의 금액을 변환한다
func CoerceAny(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		return CoerceAny(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt(int64(x))
	case uint:
		return decimal.NewFromInt(int64(x))
	case json.Number:
		return CoerceAmount(x.String())
	case string:
		return CoerceAmount(x)
	case []byte:
		return CoerceAmount(string(x))
	default:
		return decimal.Zero
	}
}

// SafeFloat NaN/Inf 를 0 으로 바꾼다
func SafeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
