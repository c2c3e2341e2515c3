// Package rules 키워드 규칙으로 거래를 분류한다.
//
// 규칙은 우선순위 내림차순으로 평가되고, 처음 일치한 규칙 하나만 적용된다.
// 같은 우선순위는 전달받은 목록 순서를 그대로 따른다.
package rules

import (
	"sort"
	"strings"

	"salonledger/models"
)

// Subject 분류 대상 거래의 문자열 필드
type Subject struct {
	Vendor      string
	Description string
	Memo        string
}

// Result 분류 결과
type Result struct {
	Category string
	IsFixed  bool
	RuleID   uint
	Matched  bool
}

type compiled struct {
	rule    models.Rule
	keyword string
}

// Engine 우선순위가 정렬된 규칙 집합. 생성 후에는 읽기 전용이다.
type Engine struct {
	rules []compiled
}

// NewEngine 활성 규칙만 골라 우선순위 내림차순으로 안정 정렬한다
func NewEngine(list []models.Rule) *Engine {
	e := &Engine{}
	for _, r := range list {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if !r.IsActive || kw == "" {
			continue
		}
		e.rules = append(e.rules, compiled{rule: r, keyword: kw})
	}
	sort.SliceStable(e.rules, func(i, j int) bool {
		return e.rules[i].rule.Priority > e.rules[j].rule.Priority
	})
	return e
}

// Len 평가 대상 규칙 수
func (e *Engine) Len() int {
	return len(e.rules)
}

// Match 처음 일치하는 규칙을 찾는다
func (e *Engine) Match(s Subject) (models.Rule, bool) {
	vendor := strings.ToLower(s.Vendor)
	desc := strings.ToLower(s.Description)
	memo := strings.ToLower(s.Memo)

	for _, c := range e.rules {
		var hit bool
		switch c.rule.Target {
		case models.TargetVendor:
			hit = strings.Contains(vendor, c.keyword)
		case models.TargetDescription:
			hit = strings.Contains(desc, c.keyword)
		case models.TargetMemo:
			hit = strings.Contains(memo, c.keyword)
		default:
			hit = strings.Contains(vendor, c.keyword) ||
				strings.Contains(desc, c.keyword) ||
				strings.Contains(memo, c.keyword)
		}
		if hit {
			return c.rule, true
		}
	}
	return models.Rule{}, false
}

// Classify 일치 규칙의 카테고리/고정지출 여부를 돌려준다. 없으면 미분류.
func (e *Engine) Classify(s Subject) Result {
	r, ok := e.Match(s)
	if !ok {
		return Result{Category: models.CategoryUncategorized}
	}
	res := Result{Category: r.Category, RuleID: r.ID, Matched: true}
	if res.Category == "" {
		res.Category = models.CategoryUncategorized
	}
	if r.IsFixed != nil {
		res.IsFixed = *r.IsFixed
	}
	return res
}
