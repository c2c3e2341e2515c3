// Package health 월별 재무 지표를 기준 구간과 비교해 A~E 등급을 매긴다.
package health

// 지표 키
const (
	MetricReturnRate      = "return_rate"
	MetricFixedCostRatio  = "fixed_cost_ratio"
	MetricLaborRatio      = "labor_ratio"
	MetricMaterialRatio   = "material_ratio"
	MetricMarketingRatio  = "marketing_ratio"
	MetricPrepaidShare    = "prepaid_share"
	MetricOperatingMargin = "operating_margin"
	MetricNetMargin       = "net_margin"
	MetricAverageSpend    = "average_spend"
	MetricTurnover        = "turnover"
	MetricCashBuffer      = "cash_buffer"
	MetricDebtRatio       = "debt_ratio"
)

// Band 지표별 양호/보통 경계.
// HigherBetter 면 값이 Good 이상일 때 양호, Fair 이상일 때 보통이다.
// 아니면 Good 이하일 때 양호, Fair 이하일 때 보통이다. Strict 면 경계값을 포함하지 않는다.
type Band struct {
	Metric       string
	Label        string
	Good         float64
	Fair         float64
	HigherBetter bool
	Strict       bool
}

// Bands 등급 기준표
var Bands = []Band{
	{Metric: MetricReturnRate, Label: "재방문율", Good: 70, Fair: 50, HigherBetter: true},
	{Metric: MetricFixedCostRatio, Label: "고정비율", Good: 60, Fair: 75},
	{Metric: MetricLaborRatio, Label: "인건비율", Good: 50, Fair: 60},
	{Metric: MetricMaterialRatio, Label: "재료비율", Good: 10, Fair: 15},
	{Metric: MetricMarketingRatio, Label: "마케팅비율", Good: 5, Fair: 10},
	{Metric: MetricPrepaidShare, Label: "정액권 결제비중", Good: 30, Fair: 60},
	{Metric: MetricOperatingMargin, Label: "영업이익률", Good: 15, Fair: 5, HigherBetter: true},
	{Metric: MetricNetMargin, Label: "순이익률", Good: 10, Fair: 0, HigherBetter: true},
	{Metric: MetricAverageSpend, Label: "객단가", Good: 60000, Fair: 40000, HigherBetter: true},
	{Metric: MetricTurnover, Label: "일평균 고객수", Good: 8, Fair: 5, HigherBetter: true},
	{Metric: MetricCashBuffer, Label: "현금 완충률", Good: 100, Fair: 50, HigherBetter: true},
	{Metric: MetricDebtRatio, Label: "부채비율", Good: 100, Fair: 200, Strict: true},
}

func bandFor(metric string) (Band, bool) {
	for _, b := range Bands {
		if b.Metric == metric {
			return b, true
		}
	}
	return Band{}, false
}

// 판정
const (
	StatusGood         = "good"
	StatusFair         = "fair"
	StatusRisk         = "risk"
	StatusInsufficient = "insufficient"
)

// Verdict 지표 하나의 판정
type Verdict struct {
	Metric string  `json:"metric"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

// Score 양호 2, 보통 1, 위험 0. 데이터 부족은 scored=false
func (v Verdict) Score() (score int, scored bool) {
	switch v.Status {
	case StatusGood:
		return 2, true
	case StatusFair:
		return 1, true
	case StatusRisk:
		return 0, true
	default:
		return 0, false
	}
}

// Evaluate 기준표로 값을 판정한다. ok 가 false 면 데이터 부족
func (b Band) Evaluate(value float64, ok bool) Verdict {
	v := Verdict{Metric: b.Metric, Label: b.Label, Value: value}
	if !ok {
		v.Status = StatusInsufficient
		return v
	}
	switch {
	case b.within(value, b.Good):
		v.Status = StatusGood
	case b.within(value, b.Fair):
		v.Status = StatusFair
	default:
		v.Status = StatusRisk
	}
	return v
}

func (b Band) within(value, bound float64) bool {
	switch {
	case b.HigherBetter && b.Strict:
		return value > bound
	case b.HigherBetter:
		return value >= bound
	case b.Strict:
		return value < bound
	default:
		return value <= bound
	}
}
