package breakeven

import (
	"testing"

	"salonledger/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCommissionRate(t *testing.T) {
	tests := []struct {
		name  string
		rank  string
		sales int64
		want  string
	}{
		{"디자이너 1000만원 이하", models.RankDesigner, 10_000_000, "0.36"},
		{"디자이너 1500만원", models.RankDesigner, 15_000_000, "0.38"},
		{"실장 2500만원", models.RankManager, 25_000_000, "0.41"},
		{"매니저는 실장 기준", models.RankStoreManager, 12_000_000, "0.38"},
		{"부원장 최고 구간", models.RankVice, 30_000_000, "0.44"},
		{"대표원장", models.RankDirector, 5_000_000, "0.43"},
		{"알 수 없는 직급은 디자이너", "스태프", 5_000_000, "0.36"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommissionRate(tt.rank, d(tt.sales)).String())
		})
	}
}

func TestCalculate_FloorWhenShareIsZero(t *testing.T) {
	res := Calculate(Input{
		Months:    []MonthSales{{Month: "2025-06", Realized: d(15_000_000)}},
		FixedCost: decimal.Zero,
		Employees: []Employee{{Name: "김민지", Rank: models.RankDesigner, Month: "2025-06", Sales: d(15_000_000)}},
	})
	require.Len(t, res.Lines, 1)
	l := res.Lines[0]
	assert.Equal(t, "0.38", l.CommissionRate.String())
	assert.Equal(t, "12000000", l.BreakEven.String())
	assert.Equal(t, "125", l.Achievement.String())
	assert.Equal(t, "3000000", l.Margin.String())
	assert.Equal(t, 1, res.Summary.Over)
}

func TestCalculate_AllocationAndHeadcount(t *testing.T) {
	res := Calculate(Input{
		Months: []MonthSales{
			{Month: "2025-06", Realized: d(30_000_000)},
			{Month: "2025-07", Realized: d(10_000_000)},
		},
		FixedCost: d(8_000_000),
		Employees: []Employee{
			{Name: "A", Rank: models.RankDesigner, Month: "2025-06"},
			{Name: "B", Rank: models.RankDesigner, Month: "2025-06"},
			{Name: "인턴1", Rank: models.RankIntern, Month: "2025-06"},
			{Name: "A", Rank: models.RankDesigner, Month: "2025-07", Sales: d(4_000_000)},
		},
	})
	// 인턴은 결과에 없다
	require.Len(t, res.Lines, 3)

	june := res.Lines[0]
	// 6월 배분 = 8,000,000 × 30/40 = 6,000,000, 2명
	assert.Equal(t, "3000000", june.FixedShare.String())
	assert.Equal(t, "15000000", june.PersonalSales.String())
	// 1500만원 디자이너 38%: 3,000,000 / 0.62
	assert.Equal(t, "4838710", june.BreakEven.String())

	july := res.Lines[2]
	assert.Equal(t, "2025-07", july.Month)
	assert.Equal(t, "2000000", july.FixedShare.String())
	assert.Equal(t, "4000000", july.PersonalSales.String())

	assert.Equal(t, 3, res.Summary.Over+res.Summary.Under)
}

func TestCalculate_ZeroRealizedSplitsEvenly(t *testing.T) {
	res := Calculate(Input{
		Months:    []MonthSales{{Month: "2025-06"}, {Month: "2025-07"}},
		FixedCost: d(2_000_000),
		Employees: []Employee{{Name: "A", Rank: models.RankDesigner, Month: "2025-07"}},
	})
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "1000000", res.Lines[0].FixedShare.String())
	assert.True(t, res.Lines[0].PersonalSales.IsZero())
	assert.Equal(t, 1, res.Summary.Under)
}

func TestCalculate_ZeroEverything(t *testing.T) {
	res := Calculate(Input{
		Months:    []MonthSales{{Month: "2025-06"}},
		Employees: []Employee{{Name: "A", Rank: models.RankDesigner, Month: "2025-06"}},
	})
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].BreakEven.IsZero())
	assert.True(t, res.Lines[0].Achievement.IsZero())
	assert.Equal(t, 1, res.Summary.Under)
}

func TestCalculate_Empty(t *testing.T) {
	res := Calculate(Input{})
	assert.NotNil(t, res.Lines)
	assert.Zero(t, res.Summary.Over)
}
