package models

// 카테고리 어휘. 재무 분석은 아래 문자열을 정확히 일치시켜 비용을 분류한다.
const (
	CategoryUncategorized = "미분류"
	CategoryOwnerDividend = "사업자배당"
	CategorySalary        = "월급"
	CategoryMaterial      = "재료비"
	CategoryInternalFunds = "내수금"
	CategoryOtherIncome   = "기타수입"
)

// LaborCategories 인건비로 보는 카테고리
var LaborCategories = []string{"월급", "급여", "인건비", "4대보험", "퇴직금"}

// MarketingCategories 마케팅 비용 카테고리
var MarketingCategories = []string{"광고비", "마케팅"}

// TaxCategories 세금 카테고리
var TaxCategories = []string{"세금", "부가세"}

// NonBusinessIncomeCategories 사업 매출 유입으로 보지 않는 입금 카테고리
var NonBusinessIncomeCategories = []string{CategoryInternalFunds, CategoryOtherIncome}

// InCategories name 이 목록에 포함되는지
func InCategories(name string, list []string) bool {
	for _, c := range list {
		if c == name {
			return true
		}
	}
	return false
}
