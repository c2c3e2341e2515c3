package breakeven

import (
	"salonledger/models"

	"github.com/shopspring/decimal"
)

// rateBand 월 개인매출(만원) 상한과 직급별 커미션율(%)
type rateBand struct {
	upTo     decimal.Decimal // 포함, 0 이면 상한 없음
	designer int64
	manager  int64
	vice     int64
	director int64
	owner    int64
}

var rateTable = []rateBand{
	{upTo: decimal.NewFromInt(1000), designer: 36, manager: 37, vice: 38, director: 43, owner: 43},
	{upTo: decimal.NewFromInt(1300), designer: 37, manager: 38, vice: 39, director: 43, owner: 43},
	{upTo: decimal.NewFromInt(1600), designer: 38, manager: 39, vice: 40, director: 43, owner: 43},
	{upTo: decimal.NewFromInt(2000), designer: 39, manager: 40, vice: 41, director: 43, owner: 43},
	{upTo: decimal.NewFromInt(2300), designer: 40, manager: 41, vice: 42, director: 43, owner: 43},
	{upTo: decimal.NewFromInt(2600), designer: 41, manager: 41, vice: 42, director: 43, owner: 43},
	{designer: 42, manager: 42, vice: 44, director: 43, owner: 43},
}

var manwon = decimal.NewFromInt(10000)

// CommissionRate 직급과 월 개인매출(원)로 커미션율(0~1)을 구한다.
// 매니저는 실장 기준, 알 수 없는 직급은 디자이너 기준.
func CommissionRate(rank string, personalSales decimal.Decimal) decimal.Decimal {
	sales := personalSales.Div(manwon)
	band := rateTable[len(rateTable)-1]
	for _, b := range rateTable {
		if !b.upTo.IsZero() && sales.LessThanOrEqual(b.upTo) {
			band = b
			break
		}
	}

	var pct int64
	switch rank {
	case models.RankManager, models.RankStoreManager:
		pct = band.manager
	case models.RankVice:
		pct = band.vice
	case models.RankDirector:
		pct = band.director
	case models.RankOwner:
		pct = band.owner
	default:
		pct = band.designer
	}
	return decimal.NewFromInt(pct).Div(decimal.NewFromInt(100))
}
