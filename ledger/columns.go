package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 표준 컬럼
const (
	ColDate        = "date"
	ColDescription = "description"
	ColMemo        = "memo"
	ColAmount      = "amount"
	ColBalance     = "balance"

	colDeposit    = "deposit"
	colWithdrawal = "withdrawal"
)

// CanonicalColumns 정규화 결과의 컬럼 순서
var CanonicalColumns = []string{ColDate, ColDescription, ColMemo, ColAmount, ColBalance}

// headerSynonyms 헤더 별칭. 키는 normalizeHeader 를 거친 형태로 적는다.
var headerSynonyms = map[string]string{
	"date": ColDate, "날짜": ColDate, "일자": ColDate, "거래일": ColDate, "거래일자": ColDate,
	"거래일시": ColDate, "거래날짜": ColDate, "거래시간": ColDate, "transactiondate": ColDate,
	"txdate": ColDate, "승인일자": ColDate, "이용일자": ColDate,

	"description": ColDescription, "desc": ColDescription, "내용": ColDescription, "적요": ColDescription,
	"거래내용": ColDescription, "기재내용": ColDescription, "가맹점": ColDescription, "가맹점명": ColDescription,
	"거래처": ColDescription, "설명": ColDescription, "merchant": ColDescription, "payee": ColDescription,
	"이용하신곳": ColDescription, "보낸분받는분": ColDescription,

	"memo": ColMemo, "메모": ColMemo, "비고": ColMemo, "note": ColMemo, "notes": ColMemo,
	"받는분통장표시": ColMemo, "내통장표시": ColMemo,

	"amount": ColAmount, "금액": ColAmount, "거래금액": ColAmount, "이용금액": ColAmount, "승인금액": ColAmount,

	"balance": ColBalance, "잔액": ColBalance, "거래후잔액": ColBalance, "잔고": ColBalance,

	"입금": colDeposit, "입금액": colDeposit, "맡기신금액": colDeposit, "deposit": colDeposit, "credit": colDeposit,
	"출금": colWithdrawal, "출금액": colWithdrawal, "찾으신금액": colWithdrawal, "withdrawal": colWithdrawal, "debit": colWithdrawal,
}

var headerNoise = regexp.MustCompile(`\(.*?\)|\[.*?\]|[\s_\-/·]`)

const headerScanRows = 20

// Table 헤더와 데이터 행
type Table struct {
	Header []string
	Rows   [][]string
}

// Row 표준 형태의 거래 한 줄
type Row struct {
	Date        time.Time
	Description string
	Memo        string
	Amount      decimal.Decimal
	Balance     *decimal.Decimal
}

func normalizeHeader(h string) string {
	return headerNoise.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "")
}

func canonicalOf(h string) string {
	return headerSynonyms[normalizeHeader(h)]
}

// NewTable 원시 그리드에서 헤더 행을 찾아 Table 을 만든다.
// 앞쪽 행 중 날짜 컬럼을 포함해 두 개 이상 인식되는 첫 행을 헤더로 쓰고, 없으면 첫 행.
func NewTable(grid [][]string) Table {
	if len(grid) == 0 {
		return Table{}
	}
	headerIdx := 0
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		recognized := 0
		hasDate := false
		for _, cell := range grid[i] {
			switch c := canonicalOf(cell); c {
			case "":
			case ColDate:
				hasDate = true
				recognized++
			default:
				recognized++
			}
		}
		if hasDate && recognized >= 2 {
			headerIdx = i
			break
		}
	}
	return Table{Header: grid[headerIdx], Rows: grid[headerIdx+1:]}
}

// NormalizeColumns 헤더를 표준 컬럼으로 매핑한다.
// 인식되지 않는 컬럼은 버리고, 없는 컬럼은 채운다(memo "", amount "0").
// 입금/출금이 분리된 명세서는 부호 있는 금액 하나로 합친다.
func NormalizeColumns(t Table) Table {
	index := map[string]int{}
	for i, h := range t.Header {
		c := canonicalOf(h)
		if c == "" {
			continue
		}
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}

	cell := func(row []string, col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return "", ok
		}
		return strings.TrimSpace(row[i]), true
	}

	out := Table{Header: append([]string(nil), CanonicalColumns...)}
	for _, row := range t.Rows {
		if isBlank(row) {
			continue
		}
		date, _ := cell(row, ColDate)
		desc, _ := cell(row, ColDescription)
		memo, _ := cell(row, ColMemo)
		balance, _ := cell(row, ColBalance)

		amount, hasAmount := cell(row, ColAmount)
		if !hasAmount {
			dep, hasDep := cell(row, colDeposit)
			wd, hasWd := cell(row, colWithdrawal)
			if hasDep || hasWd {
				amount = CoerceAmount(dep).Sub(CoerceAmount(wd).Abs()).String()
			} else {
				amount = "0"
			}
		}
		out.Rows = append(out.Rows, []string{date, desc, memo, amount, balance})
	}
	return out
}

// ParseRows 표준 테이블을 Row 로 변환한다. 날짜를 해석할 수 없는 행은 버린다.
func ParseRows(t Table) (rows []Row, dropped int) {
	norm := t
	if !isCanonical(t.Header) {
		norm = NormalizeColumns(t)
	}
	for _, r := range norm.Rows {
		date, ok := ParseDate(r[0])
		if !ok {
			dropped++
			continue
		}
		row := Row{
			Date:        date,
			Description: r[1],
			Memo:        r[2],
			Amount:      CoerceAmount(r[3]),
		}
		if strings.TrimSpace(r[4]) != "" {
			if b, err := decimal.NewFromString(amountNoise.ReplaceAllString(r[4], "")); err == nil {
				row.Balance = &b
			}
		}
		rows = append(rows, row)
	}
	return rows, dropped
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006.01.02",
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	"2006. 1. 2",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-1-2",
	"2006.1.2",
	"2006/1/2",
	"20060102",
}

// ParseDate 거래일을 해석해 현지 자정으로 맞춘다. Excel 일련번호도 허용한다.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return midnight(t), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 100000 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func isCanonical(header []string) bool {
	if len(header) != len(CanonicalColumns) {
		return false
	}
	for i, h := range header {
		if h != CanonicalColumns[i] {
			return false
		}
	}
	return true
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
