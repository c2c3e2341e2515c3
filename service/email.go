package service

import (
	"fmt"
	"html"
	"io"
	"strings"

	"salonledger/config"
	"salonledger/report"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 메일 기능 미설정
var ErrEmailDisabled = fmt.Errorf("메일 발송이 비활성화되어 있습니다. email.enabled 를 확인하세요")

// EmailService 메일 발송
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 생성
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 발송 가능 여부
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// ReportMail 리포트 메일 내용
type ReportMail struct {
	To         string
	Title      string
	Report     *report.Report
	Attachment []byte
	FileName   string
}

// SendReport 리포트 요약을 본문에, 엑셀 파일을 첨부로 보낸다
func (s *EmailService) SendReport(mail ReportMail) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	return s.send(s.buildReportMessage(mail))
}

func (s *EmailService) buildReportMessage(mail ReportMail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", "[살롱 장부] "+mail.Title)
	m.SetBody("text/html", s.reportBody(mail.Title, mail.Report))

	if len(mail.Attachment) > 0 {
		data := mail.Attachment
		m.Attach(mail.FileName,
			gomail.SetHeader(map[string][]string{"Content-Type": {xlsxContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return m
}

func (s *EmailService) reportBody(title string, rep *report.Report) string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Malgun Gothic', Arial, sans-serif; padding: 20px;">
`)
	sb.WriteString("<h2>" + html.EscapeString(title) + "</h2>\n")
	if rep != nil {
		sb.WriteString(`<table style="border-collapse: collapse;" border="1" cellpadding="6">` + "\n")
		sb.WriteString(fmt.Sprintf("<tr><th>총 수입</th><td>%s</td></tr>\n", FormatWon(rep.Summary.TotalIn)))
		sb.WriteString(fmt.Sprintf("<tr><th>총 지출</th><td>%s</td></tr>\n", FormatWon(rep.Summary.TotalOut)))
		sb.WriteString(fmt.Sprintf("<tr><th>순이익</th><td>%s</td></tr>\n", FormatWon(rep.Summary.Net)))
		sb.WriteString("</table>\n")
	}
	sb.WriteString(`<p style="color: #666;">상세 내역은 첨부한 엑셀 파일을 확인하세요.</p>
<p style="color: #999; font-size: 12px;">이 메일은 시스템에서 자동 발송되었습니다.</p>
</body>
</html>
`)
	return sb.String()
}

func (s *EmailService) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("메일 발송 실패: %w", err)
	}
	return nil
}
