package api

import (
	"fmt"
	"strings"

	"salonledger/breakeven"
	"salonledger/health"
	"salonledger/models"
	"salonledger/service"

	"github.com/shopspring/decimal"
)

// monthCosts 한 달 지출 분류. 모두 양수
type monthCosts struct {
	Fixed     float64
	Labor     float64
	Material  float64
	Marketing float64
	Other     float64
	Dividend  float64
	Tax       float64
}

// classifyCosts 출금 거래를 월별 비용 항목으로 나눈다.
// 카테고리 판정이 고정비 표시보다 먼저이고, 세금은 따로 모은다.
func classifyCosts(txs []models.Transaction) map[string]*monthCosts {
	out := map[string]*monthCosts{}
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		key := tx.TxDate.Format("2006-01")
		mc, ok := out[key]
		if !ok {
			mc = &monthCosts{}
			out[key] = mc
		}
		amt := -tx.Amount
		switch {
		case tx.Category == models.CategoryOwnerDividend:
			mc.Dividend += amt
		case models.InCategories(tx.Category, models.LaborCategories):
			mc.Labor += amt
		case models.InCategories(tx.Category, models.TaxCategories):
			mc.Tax += amt
		case tx.Category == models.CategoryMaterial:
			mc.Material += amt
		case models.InCategories(tx.Category, models.MarketingCategories):
			mc.Marketing += amt
		case tx.IsFixed:
			mc.Fixed += amt
		default:
			mc.Other += amt
		}
	}
	return out
}

func costsFor(all map[string]*monthCosts, month string) monthCosts {
	if mc, ok := all[month]; ok {
		return *mc
	}
	return monthCosts{}
}

// payrollByMonth 월별 급여 합계
func payrollByMonth(salaries []models.DesignerSalary) map[string]float64 {
	out := map[string]float64{}
	for _, s := range salaries {
		out[s.Month] += s.TotalAmount
	}
	return out
}

func indexMonthly(data []models.SalonMonthlyData) map[string]models.SalonMonthlyData {
	out := make(map[string]models.SalonMonthlyData, len(data))
	for _, d := range data {
		out[d.Month] = d
	}
	return out
}

// breakEvenInput 월별 실현매출, 기간 고정비, 직원 기록으로 계산 입력을 만든다.
// 급여 기록이 없는 달은 지점 직원 명단을 매출 0 으로 쓴다.
func breakEvenInput(months []string, monthly []models.SalonMonthlyData, txs []models.Transaction,
	salaries []models.DesignerSalary, designers []models.Designer) breakeven.Input {
	byMonth := indexMonthly(monthly)
	costs := classifyCosts(txs)

	in := breakeven.Input{FixedCost: decimal.Zero}
	staffed := map[string]bool{}
	for _, s := range salaries {
		in.Employees = append(in.Employees, breakeven.Employee{
			Name:  s.Name,
			Rank:  s.Rank,
			Month: s.Month,
			Sales: decimal.NewFromFloat(s.Sales),
		})
		staffed[s.Month] = true
	}

	for _, m := range months {
		in.Months = append(in.Months, breakeven.MonthSales{
			Month:    m,
			Realized: decimal.NewFromFloat(byMonth[m].RealizedSales()),
		})
		in.FixedCost = in.FixedCost.Add(decimal.NewFromFloat(costsFor(costs, m).Fixed))
		if staffed[m] {
			continue
		}
		for _, d := range designers {
			in.Employees = append(in.Employees, breakeven.Employee{
				Name:  d.Name,
				Rank:  d.Rank,
				Month: m,
				Sales: decimal.Zero,
			})
		}
	}
	return in
}

// healthMonths 월별 기록과 비용 분류를 합친다.
// 인건비는 급여 기록을 우선하고 없으면 인건비 카테고리 거래를 쓴다.
func healthMonths(months []string, monthly []models.SalonMonthlyData, txs []models.Transaction,
	salaries []models.DesignerSalary) []health.Month {
	byMonth := indexMonthly(monthly)
	costs := classifyCosts(txs)
	payroll := payrollByMonth(salaries)

	out := make([]health.Month, 0, len(months))
	for _, m := range months {
		d := byMonth[m]
		mc := costsFor(costs, m)
		labor := payroll[m]
		if labor <= 0 {
			labor = mc.Labor
		}
		out = append(out, health.Month{
			Month:             m,
			CardSales:         d.CardSales,
			PaySales:          d.PaySales,
			CashSales:         d.CashSales,
			AccountSales:      d.AccountSales,
			PassPaid:          d.PassPaid,
			PassUsed:          d.PassUsed,
			Visitors:          d.VisitorsTotal,
			Returning:         d.ReturningVisitors,
			WorkingDays:       d.WorkingDays,
			FixedCost:         mc.Fixed,
			LaborCost:         labor,
			MaterialCost:      mc.Material,
			MarketingCost:     mc.Marketing,
			OtherVariableCost: mc.Other,
			Tax:               mc.Tax,
			OwnerDividend:     mc.Dividend,
		})
	}
	return out
}

// prepaidOutstanding 기간 중 판매한 정액권에서 사용분을 뺀 잔액, 음수면 0
func prepaidOutstanding(monthly []models.SalonMonthlyData) float64 {
	var total float64
	for _, d := range monthly {
		total += d.PassPaid - d.PassUsed
	}
	if total < 0 {
		return 0
	}
	return total
}

// fixedDeposits 예적금 기록의 증감 합계
func fixedDeposits(logs []models.AssetLog) float64 {
	var total float64
	for _, l := range logs {
		if l.Type == models.AssetTypeDeposit {
			total += l.Signed()
		}
	}
	return total
}

func breakEvenPrompt(branch, period string, res breakeven.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "미용실 %s 지점의 %s 직원별 손익분기 분석 결과입니다.\n", branch, period)
	fmt.Fprintf(&sb, "평균 달성률 %s%%, 달성 %d명, 미달 %d명, 총 마진 %s.\n",
		res.Summary.AverageAchievement.String(), res.Summary.Over, res.Summary.Under,
		service.FormatWon(res.Summary.TotalMargin))
	for _, l := range res.Lines {
		fmt.Fprintf(&sb, "- %s %s(%s): 개인매출 %s, 손익분기 %s, 달성률 %s%%\n",
			l.Month, l.Name, l.Rank, service.FormatWon(l.PersonalSales), service.FormatWon(l.BreakEven),
			l.Achievement.String())
	}
	sb.WriteString("원장에게 보고하듯 3~5문장으로 요약하고 개선할 점을 제안하세요.")
	return sb.String()
}

func healthPrompt(branch, period string, rep health.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "미용실 %s 지점의 %s 재무 건강도 평가 결과입니다. 종합 등급 %s (점수 %.2f).\n",
		branch, period, rep.FinalGrade, rep.FinalScore)
	for _, m := range rep.Months {
		fmt.Fprintf(&sb, "[%s] 등급 %s, 매출 %.0f원\n", m.Month, m.Grade, m.Figures.TotalSales)
		for _, v := range m.Verdicts {
			if v.Status == health.StatusInsufficient {
				continue
			}
			fmt.Fprintf(&sb, "- %s %.2f (%s)\n", v.Label, v.Value, v.Status)
		}
	}
	sb.WriteString("위험 지표를 중심으로 3~5문장으로 진단하고 우선순위가 높은 조치를 제안하세요.")
	return sb.String()
}
