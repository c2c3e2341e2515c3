package health

import (
	"math"
)

// Month 월별 입력값
type Month struct {
	Month             string  `json:"month"`
	CardSales         float64 `json:"card_sales"`
	PaySales          float64 `json:"pay_sales"`
	CashSales         float64 `json:"cash_sales"`
	AccountSales      float64 `json:"account_sales"`
	PassPaid          float64 `json:"pass_paid"`
	PassUsed          float64 `json:"pass_used"`
	Visitors          int     `json:"visitors_total"`
	Returning         int     `json:"returning_visitors"`
	WorkingDays       int     `json:"working_days"`
	FixedCost         float64 `json:"fixed_cost"`
	LaborCost         float64 `json:"labor_cost"`
	MaterialCost      float64 `json:"material_cost"`
	MarketingCost     float64 `json:"marketing_cost"`
	OtherVariableCost float64 `json:"other_variable_cost"`
	Tax               float64 `json:"tax"`
	OwnerDividend     float64 `json:"owner_dividend"`
}

// TotalSales 카드+페이+현금+계좌
func (m Month) TotalSales() float64 {
	return m.CardSales + m.PaySales + m.CashSales + m.AccountSales
}

// OperatingExpense 영업비용 합계. 세금 포함, 사업자배당 제외
func (m Month) OperatingExpense() float64 {
	return m.FixedCost + m.LaborCost + m.MaterialCost + m.MarketingCost + m.OtherVariableCost + m.Tax
}

// Balance 마지막 달 기준 재무상태
type Balance struct {
	Cash               float64 `json:"cash"`
	FixedDeposits      float64 `json:"fixed_deposits"`
	PrepaidOutstanding float64 `json:"prepaid_outstanding"`
}

// Figures 월별 산출값
type Figures struct {
	TotalSales      float64 `json:"total_sales"`
	AverageSpend    float64 `json:"average_spend"`
	ReturnRate      float64 `json:"return_rate"`
	PrepaidShare    float64 `json:"prepaid_share"`
	FixedCostRatio  float64 `json:"fixed_cost_ratio"`
	LaborRatio      float64 `json:"labor_ratio"`
	MaterialRatio   float64 `json:"material_ratio"`
	MarketingRatio  float64 `json:"marketing_ratio"`
	OperatingProfit float64 `json:"operating_profit"`
	OperatingMargin float64 `json:"operating_margin"`
	NetProfit       float64 `json:"net_profit"`
	NetMargin       float64 `json:"net_margin"`
	Turnover        float64 `json:"turnover"`
}

// MonthResult 월별 결과
type MonthResult struct {
	Month    string    `json:"month"`
	Figures  Figures   `json:"figures"`
	Verdicts []Verdict `json:"verdicts"`
	Score    float64   `json:"score"`
	Grade    string    `json:"grade"`
}

// Report 전체 결과
type Report struct {
	Months     []MonthResult `json:"months"`
	FinalScore float64       `json:"final_score"`
	FinalGrade string        `json:"final_grade"`
}

// GradeFor 평균 점수를 등급으로 바꾼다
func GradeFor(score float64) string {
	switch {
	case score >= 1.8:
		return "A"
	case score >= 1.4:
		return "B"
	case score >= 1.0:
		return "C"
	case score >= 0.6:
		return "D"
	default:
		return "E"
	}
}

func pct(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return round2(num / den * 100), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func judge(metric string, value float64, ok bool) Verdict {
	b, _ := bandFor(metric)
	return b.Evaluate(value, ok)
}

// Evaluate 월별 지표를 계산하고 등급을 매긴다.
// 현금 완충률과 부채비율은 마지막 달 판정에 붙는다.
func Evaluate(months []Month, bal Balance) Report {
	rep := Report{Months: []MonthResult{}}
	var scoreSum float64
	var scoredMonths int

	for i, m := range months {
		sales := m.TotalSales()
		f := Figures{TotalSales: sales}
		var verdicts []Verdict

		ok := m.Visitors > 0
		if ok {
			f.AverageSpend = math.Round(sales / float64(m.Visitors))
		}
		verdicts = append(verdicts, judge(MetricAverageSpend, f.AverageSpend, ok))

		f.ReturnRate, ok = pct(float64(m.Returning), float64(m.Visitors))
		verdicts = append(verdicts, judge(MetricReturnRate, f.ReturnRate, ok))

		f.PrepaidShare, ok = pct(m.PassPaid, sales)
		verdicts = append(verdicts, judge(MetricPrepaidShare, f.PrepaidShare, ok))

		f.FixedCostRatio, ok = pct(m.FixedCost, sales)
		verdicts = append(verdicts, judge(MetricFixedCostRatio, f.FixedCostRatio, ok))

		f.LaborRatio, ok = pct(m.LaborCost, sales)
		verdicts = append(verdicts, judge(MetricLaborRatio, f.LaborRatio, ok))

		f.MaterialRatio, ok = pct(m.MaterialCost, sales)
		verdicts = append(verdicts, judge(MetricMaterialRatio, f.MaterialRatio, ok))

		f.MarketingRatio, ok = pct(m.MarketingCost, sales)
		verdicts = append(verdicts, judge(MetricMarketingRatio, f.MarketingRatio, ok))

		f.OperatingProfit = sales - m.OperatingExpense()
		f.OperatingMargin, ok = pct(f.OperatingProfit, sales)
		verdicts = append(verdicts, judge(MetricOperatingMargin, f.OperatingMargin, ok))

		f.NetProfit = f.OperatingProfit - m.OwnerDividend
		f.NetMargin, ok = pct(f.NetProfit, sales)
		verdicts = append(verdicts, judge(MetricNetMargin, f.NetMargin, ok))

		ok = m.WorkingDays > 0
		if ok {
			f.Turnover = round2(float64(m.Visitors) / float64(m.WorkingDays))
		}
		verdicts = append(verdicts, judge(MetricTurnover, f.Turnover, ok))

		if i == len(months)-1 {
			buffer, ok := pct(bal.Cash, 3*m.FixedCost)
			verdicts = append(verdicts, judge(MetricCashBuffer, buffer, ok))

			debt, ok := pct(bal.PrepaidOutstanding, bal.Cash+bal.FixedDeposits)
			verdicts = append(verdicts, judge(MetricDebtRatio, debt, ok))
		}

		mr := MonthResult{Month: m.Month, Figures: f, Verdicts: verdicts}
		if score, ok := meanScore(verdicts); ok {
			mr.Score = round2(score)
			mr.Grade = GradeFor(score)
			scoreSum += score
			scoredMonths++
		}
		rep.Months = append(rep.Months, mr)
	}

	if scoredMonths > 0 {
		final := scoreSum / float64(scoredMonths)
		rep.FinalScore = round2(final)
		rep.FinalGrade = GradeFor(final)
	}
	return rep
}

func meanScore(verdicts []Verdict) (float64, bool) {
	total, n := 0, 0
	for _, v := range verdicts {
		if s, ok := v.Score(); ok {
			total += s
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(total) / float64(n), true
}
