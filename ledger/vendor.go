package ledger

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	vendorDate   = regexp.MustCompile(`\d{2,4}[./\-]\d{1,2}([./\-]\d{1,2})?`)
	vendorTime   = regexp.MustCompile(`\d{1,2}:\d{2}(:\d{2})?`)
	vendorDigits = regexp.MustCompile(`\d+`)
	vendorSpaces = regexp.MustCompile(`\s+`)
	vendorLatin  = regexp.MustCompile(`\b(cms|atm|pos|kb|nh|ibk)\b`)
)

// vendorNoise 카드사, 거래 유형, 법인 표기 등 가맹점 식별에 의미 없는 토큰.
// 카드사명처럼 더 긴 토큰이 먼저 지워지도록 순서를 유지한다.
var vendorNoise = []string{
	"주식회사",
	"국민카드", "신한카드", "삼성카드", "현대카드", "롯데카드", "하나카드", "우리카드", "농협카드", "비씨카드", "bc카드", "kb카드", "nh카드",
	"체크카드", "신용카드", "카드승인", "승인취소", "자동이체", "인터넷뱅킹", "모바일뱅킹", "폰뱅킹", "펌뱅킹",
	"(주)", "㈜", "(유)", "타행", "이체", "승인", "취소", "출금", "입금", "체크", "인터넷", "모바일",
}

// NormalizeVendor 적요에서 날짜, 숫자, 카드사/거래유형 표기를 걷어내 가맹점 키를 만든다
func NormalizeVendor(description string) string {
	s := strings.ToLower(strings.TrimSpace(description))
	if s == "" {
		return ""
	}
	s = vendorDate.ReplaceAllString(s, " ")
	s = vendorTime.ReplaceAllString(s, " ")
	for _, token := range vendorNoise {
		s = strings.ReplaceAll(s, token, " ")
	}
	s = vendorLatin.ReplaceAllString(s, " ")
	s = vendorDigits.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	s = vendorSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
