// Package breakeven 직원별 고정비 분담액, 손익분기 매출, 달성률을 계산한다.
package breakeven

import (
	"sort"

	"salonledger/models"

	"github.com/shopspring/decimal"
)

// Employee 직원 월 기록
type Employee struct {
	Name  string          `json:"name"`
	Rank  string          `json:"rank"`
	Month string          `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// MonthSales 월 실현매출
type MonthSales struct {
	Month    string          `json:"month"`
	Realized decimal.Decimal `json:"realized_sales"`
}

// Input 계산 입력. FixedCost 는 기간 전체 고정비
type Input struct {
	Months    []MonthSales
	FixedCost decimal.Decimal
	Employees []Employee
}

// Line 직원 한 명의 월 결과
type Line struct {
	Month          string          `json:"month"`
	Name           string          `json:"name"`
	Rank           string          `json:"rank"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	FixedShare     decimal.Decimal `json:"fixed_share"`
	PersonalSales  decimal.Decimal `json:"personal_sales"`
	BreakEven      decimal.Decimal `json:"break_even"`
	Achievement    decimal.Decimal `json:"achievement"`
	Margin         decimal.Decimal `json:"margin"`
}

// Summary 전체 요약
type Summary struct {
	AverageAchievement decimal.Decimal `json:"average_achievement"`
	Over               int             `json:"over"`
	Under              int             `json:"under"`
	TotalMargin        decimal.Decimal `json:"total_margin"`
}

// Result 계산 결과
type Result struct {
	Lines   []Line  `json:"lines"`
	Summary Summary `json:"summary"`
}

var (
	hundred    = decimal.NewFromInt(100)
	floorRatio = decimal.NewFromFloat(0.8)
)

// Calculate 손익분기 계산
func Calculate(in Input) Result {
	res := Result{Lines: []Line{}, Summary: Summary{AverageAchievement: decimal.Zero, TotalMargin: decimal.Zero}}
	if len(in.Months) == 0 {
		return res
	}

	periodRealized := decimal.Zero
	for _, m := range in.Months {
		periodRealized = periodRealized.Add(m.Realized)
	}

	headcount := map[string]int{}
	for _, e := range in.Employees {
		if e.Rank != models.RankIntern {
			headcount[e.Month]++
		}
	}

	monthCount := decimal.NewFromInt(int64(len(in.Months)))
	for _, m := range in.Months {
		n := headcount[m.Month]
		if n == 0 {
			continue
		}
		var allocation decimal.Decimal
		if periodRealized.IsZero() {
			allocation = in.FixedCost.Div(monthCount)
		} else {
			allocation = in.FixedCost.Mul(m.Realized).Div(periodRealized)
		}
		heads := decimal.NewFromInt(int64(n))
		share := allocation.Div(heads)
		evenSales := m.Realized.Div(heads)

		for _, e := range in.Employees {
			if e.Month != m.Month || e.Rank == models.RankIntern {
				continue
			}
			personal := evenSales
			if e.Sales.IsPositive() {
				personal = e.Sales
			}
			res.Lines = append(res.Lines, line(m.Month, e, share, personal))
		}
	}

	sort.SliceStable(res.Lines, func(i, j int) bool { return res.Lines[i].Month < res.Lines[j].Month })
	res.Summary = summarize(res.Lines)
	return res
}

func line(month string, e Employee, share, personal decimal.Decimal) Line {
	rate := CommissionRate(e.Rank, personal)
	be := decimal.Zero
	if denom := decimal.NewFromInt(1).Sub(rate); denom.IsPositive() {
		be = share.Div(denom)
	}
	if !be.IsPositive() {
		be = personal.Mul(floorRatio)
	}

	achievement := decimal.Zero
	if be.IsPositive() {
		achievement = personal.Div(be).Mul(hundred)
	}

	return Line{
		Month:          month,
		Name:           e.Name,
		Rank:           e.Rank,
		CommissionRate: rate,
		FixedShare:     share.Round(0),
		PersonalSales:  personal.Round(0),
		BreakEven:      be.Round(0),
		Achievement:    achievement.Round(1),
		Margin:         personal.Sub(be).Round(0),
	}
}

func summarize(lines []Line) Summary {
	s := Summary{AverageAchievement: decimal.Zero, TotalMargin: decimal.Zero}
	if len(lines) == 0 {
		return s
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Achievement)
		s.TotalMargin = s.TotalMargin.Add(l.Margin)
		if l.BreakEven.IsPositive() && l.PersonalSales.GreaterThanOrEqual(l.BreakEven) {
			s.Over++
		} else {
			s.Under++
		}
	}
	s.AverageAchievement = total.Div(decimal.NewFromInt(int64(len(lines)))).Round(1)
	return s
}
