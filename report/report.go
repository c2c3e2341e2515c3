// Package report 분류된 거래를 기간 단위로 집계한다.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"salonledger/models"

	"github.com/shopspring/decimal"
)

// 집계 단위
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

// Filter 리포트 조회 조건
type Filter struct {
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
	Month       int    `json:"month" binding:"omitempty,min=1,max=12"`
	StartMonth  int    `json:"start_month" binding:"omitempty,min=1,max=12"`
	EndMonth    int    `json:"end_month" binding:"omitempty,min=1,max=12"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Branch      string `json:"branch"`
	Granularity string `json:"granularity" binding:"omitempty,oneof=day week month"`
}

// monthRange 시작월/종료월. 월 조건이 없으면 ok=false
func (f Filter) monthRange() (start, end int, ok bool) {
	if f.Month == 0 && f.StartMonth == 0 && f.EndMonth == 0 {
		return 0, 0, false
	}
	start = firstNonZero(f.StartMonth, f.Month, 1)
	end = firstNonZero(f.EndMonth, f.Month, start)
	return start, end, true
}

func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// dayRange 일 단위 조회일 때만 적용되는 날짜 범위
func (f Filter) dayRange() (from, to time.Time, ok bool) {
	if f.granularity() != GranularityDay || f.StartDate == "" || f.EndDate == "" {
		return time.Time{}, time.Time{}, false
	}
	from, err1 := time.ParseInLocation("2006-01-02", f.StartDate, time.Local)
	to, err2 := time.ParseInLocation("2006-01-02", f.EndDate, time.Local)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (f Filter) granularity() string {
	if f.Granularity == "" {
		return GranularityMonth
	}
	return f.Granularity
}

// Window 조회 대상 기간 [from, to)
func (f Filter) Window() (from, to time.Time) {
	start, end, ok := f.monthRange()
	if !ok {
		start, end = 1, 12
	}
	from = time.Date(f.Year, time.Month(start), 1, 0, 0, 0, 0, time.Local)
	to = time.Date(f.Year, time.Month(end), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	return from, to
}

// ErrInvalidFilter 조회 조건 오류
var ErrInvalidFilter = errors.New("조회 조건이 올바르지 않습니다")

// Validate 월 범위와 일 단위 날짜 범위를 확인한다
func (f Filter) Validate() error {
	if start, end, ok := f.monthRange(); ok && start > end {
		return fmt.Errorf("%w: 시작월(%d)이 종료월(%d)보다 늦습니다", ErrInvalidFilter, start, end)
	}
	if f.granularity() != GranularityDay || (f.StartDate == "" && f.EndDate == "") {
		return nil
	}
	from, to, ok := f.dayRange()
	if !ok {
		return fmt.Errorf("%w: start_date, end_date 는 함께 YYYY-MM-DD 형식이어야 합니다", ErrInvalidFilter)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: 종료일이 시작일보다 빠릅니다", ErrInvalidFilter)
	}
	return nil
}

// Match 거래가 조건에 포함되는지
func (f Filter) Match(t time.Time) bool {
	if t.Year() != f.Year {
		return false
	}
	if start, end, ok := f.monthRange(); ok {
		m := int(t.Month())
		if m < start || m > end {
			return false
		}
	}
	if from, to, ok := f.dayRange(); ok {
		if t.Before(from) || t.After(to) {
			return false
		}
	}
	return true
}

// Entry 집계 입력 한 줄
type Entry struct {
	ID          uint            `json:"id"`
	Branch      string          `json:"branch"`
	Date        time.Time       `json:"tx_date"`
	Description string          `json:"description"`
	Memo        string          `json:"memo"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IsFixed     bool            `json:"is_fixed"`
}

// FromTransaction 저장된 거래를 집계 입력으로 변환
func FromTransaction(tx models.Transaction) Entry {
	return Entry{
		ID:          tx.ID,
		Branch:      tx.Branch,
		Date:        tx.TxDate,
		Description: tx.Description,
		Memo:        tx.Memo,
		Category:    tx.Category,
		Amount:      decimal.NewFromFloat(tx.Amount),
		IsFixed:     tx.IsFixed,
	}
}

// Summary 합계
type Summary struct {
	TotalIn  decimal.Decimal `json:"total_in"`
	TotalOut decimal.Decimal `json:"total_out"`
	Net      decimal.Decimal `json:"net"`
}

// CategorySum 카테고리 합계
type CategorySum struct {
	Category string          `json:"category"`
	Sum      decimal.Decimal `json:"sum"`
}

// ByCategory 수입/고정지출/변동지출 카테고리 합계
type ByCategory struct {
	Income          []CategorySum `json:"income"`
	FixedExpense    []CategorySum `json:"fixed_expense"`
	VariableExpense []CategorySum `json:"variable_expense"`
}

// FixedSum 고정 여부별 합계
type FixedSum struct {
	IsFixed bool            `json:"is_fixed"`
	Sum     decimal.Decimal `json:"sum"`
}

// Bucket 기간 단위 합계
type Bucket struct {
	Period      string          `json:"period"`
	TotalIn     decimal.Decimal `json:"total_in"`
	TotalOut    decimal.Decimal `json:"total_out"`
	FixedOut    decimal.Decimal `json:"fixed_out"`
	VariableOut decimal.Decimal `json:"variable_out"`
	Net         decimal.Decimal `json:"net"`
}

// Report 기간 리포트
type Report struct {
	Summary        Summary    `json:"summary"`
	ByCategory     ByCategory `json:"by_category"`
	ByFixed        []FixedSum `json:"by_fixed"`
	ByPeriod       []Bucket   `json:"by_period"`
	IncomeDetails  []Entry    `json:"income_details"`
	ExpenseDetails []Entry    `json:"expense_details"`
}

// Build 조건에 맞는 거래를 집계한다. 금액이 0 인 거래는 모든 집계에서 빠진다.
func Build(entries []Entry, f Filter) *Report {
	r := &Report{
		Summary:        Summary{TotalIn: decimal.Zero, TotalOut: decimal.Zero, Net: decimal.Zero},
		ByCategory:     ByCategory{Income: []CategorySum{}, FixedExpense: []CategorySum{}, VariableExpense: []CategorySum{}},
		ByFixed:        []FixedSum{},
		ByPeriod:       []Bucket{},
		IncomeDetails:  []Entry{},
		ExpenseDetails: []Entry{},
	}

	income := newSums()
	fixedExp := newSums()
	variableExp := newSums()
	fixedTotals := map[bool]decimal.Decimal{}
	buckets := map[string]*Bucket{}

	for _, e := range entries {
		if e.Amount.IsZero() || !f.Match(e.Date) {
			continue
		}
		if strings.TrimSpace(e.Category) == "" {
			e.Category = models.CategoryUncategorized
		}

		key := periodKey(e.Date, f.granularity())
		b, ok := buckets[key]
		if !ok {
			b = &Bucket{Period: key, TotalIn: decimal.Zero, TotalOut: decimal.Zero, FixedOut: decimal.Zero, VariableOut: decimal.Zero, Net: decimal.Zero}
			buckets[key] = b
		}
		b.Net = b.Net.Add(e.Amount)

		if e.Amount.IsPositive() {
			r.Summary.TotalIn = r.Summary.TotalIn.Add(e.Amount)
			income.add(e.Category, e.Amount)
			b.TotalIn = b.TotalIn.Add(e.Amount)
			r.IncomeDetails = append(r.IncomeDetails, e)
		} else {
			r.Summary.TotalOut = r.Summary.TotalOut.Add(e.Amount)
			b.TotalOut = b.TotalOut.Add(e.Amount)
			if e.IsFixed {
				fixedExp.add(e.Category, e.Amount)
				b.FixedOut = b.FixedOut.Add(e.Amount)
			} else {
				variableExp.add(e.Category, e.Amount)
				b.VariableOut = b.VariableOut.Add(e.Amount)
			}
			r.ExpenseDetails = append(r.ExpenseDetails, e)
		}
		fixedTotals[e.IsFixed] = fixedTotals[e.IsFixed].Add(e.Amount)
	}

	r.Summary.Net = r.Summary.TotalIn.Add(r.Summary.TotalOut)
	r.ByCategory.Income = income.sorted()
	r.ByCategory.FixedExpense = fixedExp.sorted()
	r.ByCategory.VariableExpense = variableExp.sorted()

	for _, k := range []bool{false, true} {
		if sum, ok := fixedTotals[k]; ok {
			r.ByFixed = append(r.ByFixed, FixedSum{IsFixed: k, Sum: sum})
		}
	}

	for _, b := range buckets {
		r.ByPeriod = append(r.ByPeriod, *b)
	}
	sort.Slice(r.ByPeriod, func(i, j int) bool { return r.ByPeriod[i].Period < r.ByPeriod[j].Period })

	byDateDesc := func(list []Entry) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	}
	byDateDesc(r.IncomeDetails)
	byDateDesc(r.ExpenseDetails)

	return r
}

// periodKey 일: YYYY-MM-DD, 주: 해당 주 월요일, 월: YYYY-MM
func periodKey(t time.Time, granularity string) string {
	switch granularity {
	case GranularityDay:
		return t.Format("2006-01-02")
	case GranularityWeek:
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset).Format("2006-01-02")
	default:
		return t.Format("2006-01")
	}
}

type sums struct {
	order []string
	vals  map[string]decimal.Decimal
}

func newSums() *sums {
	return &sums{vals: map[string]decimal.Decimal{}}
}

func (s *sums) add(category string, amount decimal.Decimal) {
	if _, ok := s.vals[category]; !ok {
		s.order = append(s.order, category)
	}
	s.vals[category] = s.vals[category].Add(amount)
}

func (s *sums) sorted() []CategorySum {
	sort.Strings(s.order)
	out := make([]CategorySum, 0, len(s.order))
	for _, c := range s.order {
		out = append(out, CategorySum{Category: c, Sum: s.vals[c]})
	}
	return out
}
