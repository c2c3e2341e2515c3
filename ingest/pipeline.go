// Package ingest 업로드된 통장 명세서를 정규화, 분류하고 월 단위로 저장한다.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"salonledger/ledger"
	"salonledger/logger"
	"salonledger/models"
	"salonledger/rules"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoTransactions 선택한 기간에 남는 거래가 없음
	ErrNoTransactions = errors.New("선택된 기간에 해당하는 거래내역이 없습니다")
	// ErrInvalidPeriod 기간 파라미터 오류
	ErrInvalidPeriod = errors.New("기간 형식이 올바르지 않습니다")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Store 파이프라인이 사용하는 저장소
type Store interface {
	EnsureBranch(ctx context.Context, userID uint, name string) error
	ActiveRules(ctx context.Context, userID uint) ([]models.Rule, error)
	// SaveBatch 업로드 묶음과 거래를 한 트랜잭션으로 저장한다.
	// replace 가 true 면 같은 (user, branch, year, month) 의 기존 묶음을 먼저 지운다.
	SaveBatch(ctx context.Context, upload *models.Upload, txs []models.Transaction, replace bool) error
	// ReplaceAssetSnapshot 같은 메모의 자동등록 기록을 지우고 새로 넣는다
	ReplaceAssetSnapshot(ctx context.Context, entry *models.AssetLog) error
}

// Request 업로드 요청
type Request struct {
	UserID      uint
	Branch      string
	Filename    string
	Content     []byte
	PeriodYear  int
	PeriodMonth int
	StartMonth  string
	EndMonth    string
}

// ClassifiedRow 분류까지 끝난 행
type ClassifiedRow struct {
	ledger.Row
	Vendor   string
	Category string
	IsFixed  bool
	RuleID   uint
}

// Result 처리 결과
type Result struct {
	Rows     []ClassifiedRow
	Uploads  []models.Upload
	Assets   []models.AssetLog
	Dropped  int
	Warnings []string
}

// Options 파이프라인 옵션
type Options struct {
	ChunkSize       int
	ReplaceExisting bool
}

// Pipeline 업로드 처리기
type Pipeline struct {
	store Store
	opts  Options
}

// NewPipeline 파이프라인 생성
func NewPipeline(store Store, opts Options) *Pipeline {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 500
	}
	return &Pipeline{store: store, opts: opts}
}

type window struct {
	start, end time.Time
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

// resolveWindow 시작/종료월이 있으면 그 범위, 없으면 대상 연월 한 달
func resolveWindow(req Request) (window, error) {
	if req.StartMonth != "" || req.EndMonth != "" {
		if !monthPattern.MatchString(req.StartMonth) || !monthPattern.MatchString(req.EndMonth) {
			return window{}, fmt.Errorf("%w: start_month, end_month 는 YYYY-MM 형식이어야 합니다", ErrInvalidPeriod)
		}
		start, _ := time.ParseInLocation("2006-01", req.StartMonth, time.Local)
		end, _ := time.ParseInLocation("2006-01", req.EndMonth, time.Local)
		if end.Before(start) {
			return window{}, fmt.Errorf("%w: 종료월이 시작월보다 빠릅니다", ErrInvalidPeriod)
		}
		return window{start: start, end: end.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	}
	if req.PeriodYear < 2000 || req.PeriodMonth < 1 || req.PeriodMonth > 12 {
		return window{}, fmt.Errorf("%w: period_year, period_month 를 확인하세요", ErrInvalidPeriod)
	}
	start := time.Date(req.PeriodYear, time.Month(req.PeriodMonth), 1, 0, 0, 0, 0, time.Local)
	return window{start: start, end: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
}

type monthKey struct {
	year  int
	month int
}

// Run 업로드 한 건을 처리한다
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	log := logger.FromContext(ctx)

	win, err := resolveWindow(req)
	if err != nil {
		return nil, err
	}

	rows, dropped, err := ledger.Load(req.Content, req.Filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTransactions
	}

	inScope := rows[:0:0]
	for _, r := range rows {
		if win.contains(r.Date) {
			inScope = append(inScope, r)
		}
	}
	if len(inScope) == 0 {
		return nil, ErrNoTransactions
	}

	// 입력 검증이 끝난 뒤에만 지점을 등록한다
	if err := p.store.EnsureBranch(ctx, req.UserID, req.Branch); err != nil {
		return nil, fmt.Errorf("지점 등록 실패: %w", err)
	}

	ruleList, err := p.store.ActiveRules(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("규칙 조회 실패: %w", err)
	}
	engine := rules.NewEngine(ruleList)

	result := &Result{Dropped: dropped}
	groups := map[monthKey][]ClassifiedRow{}
	for _, r := range inScope {
		vendor := ledger.NormalizeVendor(r.Description)
		cls := engine.Classify(rules.Subject{Vendor: vendor, Description: r.Description, Memo: r.Memo})
		row := ClassifiedRow{Row: r, Vendor: vendor, Category: cls.Category, IsFixed: cls.IsFixed, RuleID: cls.RuleID}
		result.Rows = append(result.Rows, row)

		k := monthKey{year: r.Date.Year(), month: int(r.Date.Month())}
		groups[k] = append(groups[k], row)
	}

	keys := make([]monthKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	token := uuid.NewString()
	for _, k := range keys {
		group := groups[k]
		upload := models.Upload{
			UserID:           req.UserID,
			BatchToken:       token,
			Branch:           req.Branch,
			PeriodYear:       k.year,
			PeriodMonth:      k.month,
			StartMonth:       req.StartMonth,
			EndMonth:         req.EndMonth,
			OriginalFilename: req.Filename,
			TotalRows:        len(group),
			Status:           models.UploadStatusProcessed,
		}
		txs := make([]models.Transaction, 0, len(group))
		for _, r := range group {
			txs = append(txs, toTransaction(req, r))
		}
		if err := p.store.SaveBatch(ctx, &upload, txs, p.opts.ReplaceExisting); err != nil {
			return nil, fmt.Errorf("%d년 %d월 거래 저장 실패: %w", k.year, k.month, err)
		}
		result.Uploads = append(result.Uploads, upload)
		log.Info().
			Uint("upload_id", upload.ID).
			Str("branch", req.Branch).
			Int("year", k.year).
			Int("month", k.month).
			Int("rows", len(group)).
			Msg("업로드 묶음 저장")

		entry, ok := monthEndSnapshot(req, k, group)
		if !ok {
			continue
		}
		if err := p.store.ReplaceAssetSnapshot(ctx, &entry); err != nil {
			log.Warn().Err(err).Str("memo", entry.Memo).Msg("월말 잔액 자동등록 실패")
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s 실패: %v", entry.Memo, err))
			continue
		}
		result.Assets = append(result.Assets, entry)
	}

	return result, nil
}

func toTransaction(req Request, r ClassifiedRow) models.Transaction {
	tx := models.Transaction{
		UserID:      req.UserID,
		Branch:      req.Branch,
		TxDate:      r.Date,
		Description: r.Description,
		Memo:        r.Memo,
		Amount:      r.Amount.InexactFloat64(),
		Category:    r.Category,
		IsFixed:     r.IsFixed,
	}
	// 잔액 칸이 비어 있으면 NULL 로 남긴다. 0 원 잔액과 구분된다
	if r.Balance != nil {
		b := r.Balance.InexactFloat64()
		tx.Balance = &b
	}
	if r.Vendor != "" {
		v := r.Vendor
		tx.VendorNormalized = &v
	}
	if tx.Category == "" {
		tx.Category = models.CategoryUncategorized
	}
	return tx
}

// monthEndSnapshot 그룹에서 가장 늦은 날짜의 행(같은 날이면 파일상 마지막 행)의 잔액으로
// 다음 달 1일자 자산 기록을 만든다. 잔액이 없으면 만들지 않는다.
func monthEndSnapshot(req Request, k monthKey, group []ClassifiedRow) (models.AssetLog, bool) {
	last := -1
	for i, r := range group {
		if last < 0 || !r.Date.Before(group[last].Date) {
			last = i
		}
	}
	if last < 0 || group[last].Balance == nil {
		return models.AssetLog{}, false
	}
	balance := *group[last].Balance
	return models.AssetLog{
		UserID:    req.UserID,
		Branch:    req.Branch,
		Type:      models.AssetTypeIncome,
		Direction: models.DirectionIncrease,
		Category:  req.Branch + " 사업자통장",
		Amount:    balance.Round(2).InexactFloat64(),
		Memo:      models.MonthEndBalanceMemo(k.year, k.month),
		CreatedAt: time.Date(k.year, time.Month(k.month), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0),
	}, true
}

// Summary 결과 행을 카테고리별로 집계한다 (엑셀 summary 시트용)
func (r *Result) Summary() []CategoryTotal {
	idx := map[string]int{}
	var out []CategoryTotal
	for _, row := range r.Rows {
		i, ok := idx[row.Category]
		if !ok {
			i = len(out)
			idx[row.Category] = i
			out = append(out, CategoryTotal{Category: row.Category, Sum: decimal.Zero})
		}
		out[i].Count++
		out[i].Sum = out[i].Sum.Add(row.Amount)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// CategoryTotal 카테고리별 건수와 합계
type CategoryTotal struct {
	Category string
	Count    int
	Sum      decimal.Decimal
}

// Unclassified 미분류 행 수
func (r *Result) Unclassified() int {
	n := 0
	for _, row := range r.Rows {
		if row.Category == models.CategoryUncategorized {
			n++
		}
	}
	return n
}
