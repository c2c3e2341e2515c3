package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumns_Synonyms(t *testing.T) {
	in := Table{
		Header: []string{"거래일자", "적요", "비고", "거래금액(원)", "거래 후 잔액", "지점코드"},
		Rows: [][]string{
			{"2025-06-05", "스타벅스 강남", "커피", "-50,000", "1,150,000", "001"},
		},
	}
	out := NormalizeColumns(in)

	assert.Equal(t, CanonicalColumns, out.Header)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, []string{"2025-06-05", "스타벅스 강남", "커피", "-50,000", "1,150,000"}, out.Rows[0])
}

func TestNormalizeColumns_BackfillsMissing(t *testing.T) {
	in := Table{
		Header: []string{"date", "description"},
		Rows:   [][]string{{"2025-06-05", "월급"}},
	}
	out := NormalizeColumns(in)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, []string{"2025-06-05", "월급", "", "0", ""}, out.Rows[0])
}

func TestNormalizeColumns_IdempotentOnCanonical(t *testing.T) {
	canonical := Table{
		Header: append([]string(nil), CanonicalColumns...),
		Rows: [][]string{
			{"2025-06-05", "스타벅스 강남", "", "-50000", ""},
			{"2025-06-20", "월급", "6월", "3000000", "1200000"},
		},
	}
	once := NormalizeColumns(canonical)
	assert.Equal(t, canonical, once)
	assert.Equal(t, once, NormalizeColumns(once))
}

func TestNormalizeColumns_SplitDepositWithdrawal(t *testing.T) {
	in := Table{
		Header: []string{"거래일시", "내용", "찾으신금액", "맡기신금액", "잔액"},
		Rows: [][]string{
			{"2025.06.05 10:12:00", "스타벅스", "5,000", "", "95,000"},
			{"2025.06.06 09:00:00", "카드매출", "", "120,000", "215,000"},
		},
	}
	out := NormalizeColumns(in)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "-5000", out.Rows[0][3])
	assert.Equal(t, "120000", out.Rows[1][3])
}

func TestNewTable_SkipsTitleRows(t *testing.T) {
	grid := [][]string{
		{"거래내역 조회"},
		{"계좌번호", "123-456-789"},
		{},
		{"No", "거래일", "적요", "금액", "잔액"},
		{"1", "2025-06-05", "스타벅스", "-5000", "95000"},
	}
	tbl := NewTable(grid)
	assert.Equal(t, []string{"No", "거래일", "적요", "금액", "잔액"}, tbl.Header)
	assert.Len(t, tbl.Rows, 1)
}

func TestParseRows(t *testing.T) {
	tbl := Table{
		Header: []string{"날짜", "내용", "금액", "잔액"},
		Rows: [][]string{
			{"2025-06-05", "스타벅스 강남", "-50,000원", ""},
			{"합계", "", "1000", ""},
			{"20250620", "월급", "abc", "1,200,000"},
			{"", "", "", ""},
		},
	}
	rows, dropped := ParseRows(tbl)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, dropped)

	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.Local), rows[0].Date)
	assert.Equal(t, "-50000", rows[0].Amount.String())
	assert.Nil(t, rows[0].Balance)

	// 숫자로 해석되지 않는 금액은 0
	assert.True(t, rows[1].Amount.IsZero())
	require.NotNil(t, rows[1].Balance)
	assert.Equal(t, "1200000", rows[1].Balance.String())
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 5, 0, 0, 0, 0, time.Local)
	for _, s := range []string{"2025-06-05", "2025.06.05", "2025/06/05 13:45", "2025-06-05 13:45:10", "20250605", "2025.6.5"} {
		got, ok := ParseDate(s)
		require.Truef(t, ok, "ParseDate(%q)", s)
		assert.Equalf(t, want, got, "ParseDate(%q)", s)
	}

	// Excel 일련번호
	got, ok := ParseDate("45658")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), got)

	for _, s := range []string{"", "합계", "not a date"} {
		_, ok := ParseDate(s)
		assert.Falsef(t, ok, "ParseDate(%q)", s)
	}
}
