package service

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"salonledger/ingest"
	"salonledger/report"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// XLSXContentType 엑셀 응답 Content-Type
func XLSXContentType() string {
	return xlsxContentType
}

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon 3,000,000원 형식
func FormatWon(d decimal.Decimal) string {
	return wonPrinter.Sprintf("%d원", d.Round(0).IntPart())
}

type styles struct {
	header  int
	data    int
	amount  int
	summary int
}

func newStyles(f *excelize.File) styles {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	data, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	amount, _ := f.NewStyle(&excelize.Style{
		NumFmt:    3,
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    border,
	})
	summary, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	return styles{header: header, data: data, amount: amount, summary: summary}
}

// sheetWriter 한 시트에 행 단위로 기록한다
type sheetWriter struct {
	f     *excelize.File
	sheet string
	st    styles
	row   int
}

func newSheet(f *excelize.File, st styles, name string, first bool) (*sheetWriter, error) {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	return &sheetWriter{f: f, sheet: name, st: st}, nil
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

// write 한 행 기록. amountCols 에 해당하는 열은 숫자 서식
func (w *sheetWriter) write(style int, values []interface{}, amountCols ...int) error {
	w.row++
	cell, _ := excelize.CoordinatesToCellName(1, w.row)
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(values), w.row)
	if err := w.f.SetCellStyle(w.sheet, cell, last, style); err != nil {
		return err
	}
	if style != w.st.data {
		return nil
	}
	for _, c := range amountCols {
		ac, _ := excelize.CoordinatesToCellName(c, w.row)
		if err := w.f.SetCellStyle(w.sheet, ac, ac, w.st.amount); err != nil {
			return err
		}
	}
	return nil
}

func headerRow(names ...string) []interface{} {
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// ProcessedWorkbook 업로드 처리 결과를 transactions, summary 두 시트로 만든다
func ProcessedWorkbook(res *ingest.Result) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	st := newStyles(f)

	txSheet, err := newSheet(f, st, "transactions", true)
	if err != nil {
		return nil, err
	}
	txSheet.widths(12, 30, 20, 14, 14, 20, 14, 8)
	if err := txSheet.write(st.header, headerRow("date", "description", "memo", "amount", "balance", "vendor", "category", "is_fixed")); err != nil {
		return nil, err
	}
	for _, r := range res.Rows {
		var balance interface{}
		if r.Balance != nil {
			balance = num(*r.Balance)
		}
		values := []interface{}{r.Date.Format("2006-01-02"), r.Description, r.Memo, num(r.Amount), balance, r.Vendor, r.Category, r.IsFixed}
		if err := txSheet.write(st.data, values, 4, 5); err != nil {
			return nil, err
		}
	}

	sumSheet, err := newSheet(f, st, "summary", false)
	if err != nil {
		return nil, err
	}
	sumSheet.widths(20, 10, 16)
	if err := sumSheet.write(st.header, headerRow("category", "count", "sum")); err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, c := range res.Summary() {
		total = total.Add(c.Sum)
		if err := sumSheet.write(st.data, []interface{}{c.Category, c.Count, num(c.Sum)}, 3); err != nil {
			return nil, err
		}
	}
	if err := sumSheet.write(st.summary, []interface{}{"합계", len(res.Rows), num(total)}); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// ReportWorkbook 기간 리포트를 엑셀로 만든다
func ReportWorkbook(title string, rep *report.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()
	st := newStyles(f)

	summary, err := newSheet(f, st, "요약", true)
	if err != nil {
		return nil, err
	}
	summary.widths(20, 18)
	rows := [][]interface{}{
		{"리포트", title},
		{"총 수입", num(rep.Summary.TotalIn)},
		{"총 지출", num(rep.Summary.TotalOut)},
		{"순이익", num(rep.Summary.Net)},
	}
	if err := summary.write(st.header, headerRow("항목", "값")); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := summary.write(st.data, r, 2); err != nil {
			return nil, err
		}
	}

	category, err := newSheet(f, st, "카테고리", false)
	if err != nil {
		return nil, err
	}
	category.widths(14, 20, 16)
	if err := category.write(st.header, headerRow("구분", "카테고리", "합계")); err != nil {
		return nil, err
	}
	groups := []struct {
		label string
		list  []report.CategorySum
	}{
		{"수입", rep.ByCategory.Income},
		{"고정지출", rep.ByCategory.FixedExpense},
		{"변동지출", rep.ByCategory.VariableExpense},
	}
	for _, g := range groups {
		for _, c := range g.list {
			if err := category.write(st.data, []interface{}{g.label, c.Category, num(c.Sum)}, 3); err != nil {
				return nil, err
			}
		}
	}

	period, err := newSheet(f, st, "기간별", false)
	if err != nil {
		return nil, err
	}
	period.widths(14, 16, 16, 16, 16, 16)
	if err := period.write(st.header, headerRow("기간", "수입", "지출", "고정지출", "변동지출", "순이익")); err != nil {
		return nil, err
	}
	for _, b := range rep.ByPeriod {
		values := []interface{}{b.Period, num(b.TotalIn), num(b.TotalOut), num(b.FixedOut), num(b.VariableOut), num(b.Net)}
		if err := period.write(st.data, values, 2, 3, 4, 5, 6); err != nil {
			return nil, err
		}
	}
	if err := period.write(st.summary, []interface{}{"합계", num(rep.Summary.TotalIn), num(rep.Summary.TotalOut), "", "", num(rep.Summary.Net)}); err != nil {
		return nil, err
	}

	for _, d := range []struct {
		name    string
		entries []report.Entry
	}{
		{"수입내역", rep.IncomeDetails},
		{"지출내역", rep.ExpenseDetails},
	} {
		sheet, err := newSheet(f, st, d.name, false)
		if err != nil {
			return nil, err
		}
		sheet.widths(12, 12, 30, 20, 16, 16, 8)
		if err := sheet.write(st.header, headerRow("날짜", "지점", "내용", "메모", "카테고리", "금액", "고정")); err != nil {
			return nil, err
		}
		for _, e := range d.entries {
			values := []interface{}{e.Date.Format("2006-01-02"), e.Branch, e.Description, e.Memo, e.Category, num(e.Amount), fixedLabel(e.IsFixed)}
			if err := sheet.write(st.data, values, 6); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}

func fixedLabel(fixed bool) string {
	if fixed {
		return "고정"
	}
	return "변동"
}

// ContentDisposition RFC 5987 filename* 를 포함한 첨부 헤더
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", asciiFallback(filename), pathEscape(filename))
}

func pathEscape(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), "+", "%2B")
}

func asciiFallback(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			sb.WriteByte('_')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
