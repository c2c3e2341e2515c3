package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonledger/ledger"
	"salonledger/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rules    []models.Rule
	branches []string
	uploads  []models.Upload
	txs      map[uint][]models.Transaction
	assets   []models.AssetLog
	replaced []bool
	assetErr error
	nextID   uint
}

func newFakeStore(rules ...models.Rule) *fakeStore {
	return &fakeStore{rules: rules, txs: map[uint][]models.Transaction{}}
}

func (f *fakeStore) EnsureBranch(_ context.Context, _ uint, name string) error {
	f.branches = append(f.branches, name)
	return nil
}

func (f *fakeStore) ActiveRules(_ context.Context, _ uint) ([]models.Rule, error) {
	return f.rules, nil
}

func (f *fakeStore) SaveBatch(_ context.Context, upload *models.Upload, txs []models.Transaction, replace bool) error {
	f.nextID++
	upload.ID = f.nextID
	for i := range txs {
		txs[i].UploadID = upload.ID
	}
	f.uploads = append(f.uploads, *upload)
	f.txs[upload.ID] = txs
	f.replaced = append(f.replaced, replace)
	return nil
}

func (f *fakeStore) ReplaceAssetSnapshot(_ context.Context, entry *models.AssetLog) error {
	if f.assetErr != nil {
		return f.assetErr
	}
	f.assets = append(f.assets, *entry)
	return nil
}

const juneCSV = "날짜,내용,메모,금액,잔액\n" +
	"2025-06-03,스타벅스 강남,,-50000,\n" +
	"2025-06-25,월급,,3000000,1200000\n"

func TestPipeline_EndToEnd(t *testing.T) {
	store := newFakeStore(models.Rule{ID: 1, Keyword: "스타벅스", Target: models.TargetAny, Category: "카페", Priority: 100, IsActive: true})
	p := NewPipeline(store, Options{ReplaceExisting: true})

	res, err := p.Run(context.Background(), Request{
		UserID:      7,
		Branch:      "강남점",
		Filename:    "june.csv",
		Content:     []byte(juneCSV),
		PeriodYear:  2025,
		PeriodMonth: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"강남점"}, store.branches)
	require.Len(t, store.uploads, 1)
	up := store.uploads[0]
	assert.Equal(t, 2025, up.PeriodYear)
	assert.Equal(t, 6, up.PeriodMonth)
	assert.Equal(t, 2, up.TotalRows)
	assert.Equal(t, models.UploadStatusProcessed, up.Status)
	assert.NotEmpty(t, up.BatchToken)
	assert.True(t, store.replaced[0])

	txs := store.txs[up.ID]
	require.Len(t, txs, 2)
	assert.Equal(t, "카페", txs[0].Category)
	assert.Equal(t, models.CategoryUncategorized, txs[1].Category)
	assert.Equal(t, -50000.0, txs[0].Amount)
	assert.Equal(t, up.ID, txs[1].UploadID)

	require.Len(t, store.assets, 1)
	a := store.assets[0]
	assert.Equal(t, 1200000.0, a.Amount)
	assert.Equal(t, "2025년 6월 말 잔액 기준 자동등록", a.Memo)
	assert.Equal(t, "강남점 사업자통장", a.Category)
	assert.Equal(t, models.AssetTypeIncome, a.Type)
	assert.Equal(t, models.DirectionIncrease, a.Direction)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local), a.CreatedAt)

	assert.Len(t, res.Rows, 2)
	assert.Equal(t, 1, res.Unclassified())
	assert.Empty(t, res.Warnings)
}

func TestPipeline_StrictMonthFilter(t *testing.T) {
	content := "날짜,내용,금액\n2025-05-31,전월,-1000\n2025-06-01,당월,-2000\n2025-07-01,익월,-3000\n"
	store := newFakeStore()
	res, err := NewPipeline(store, Options{}).Run(context.Background(), Request{
		UserID: 1, Branch: "홍대점", Filename: "a.csv", Content: []byte(content), PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "당월", res.Rows[0].Description)
	// 잔액이 없으면 자산 기록을 만들지 않는다
	assert.Empty(t, store.assets)
}

func TestPipeline_RangeSplitsByMonth(t *testing.T) {
	content := "날짜,내용,금액,잔액\n" +
		"2025-07-02,b,-10,900\n" +
		"2025-06-02,a,-10,1000\n" +
		"2025-07-31,c,-10,800\n" +
		"2025-07-31,d,-10,700\n" +
		"2025-09-01,out,-10,1\n"
	store := newFakeStore()
	res, err := NewPipeline(store, Options{}).Run(context.Background(), Request{
		UserID: 1, Branch: "홍대점", Filename: "a.csv", Content: []byte(content),
		StartMonth: "2025-06", EndMonth: "2025-08",
	})
	require.NoError(t, err)

	require.Len(t, store.uploads, 2)
	assert.Equal(t, 6, store.uploads[0].PeriodMonth)
	assert.Equal(t, 7, store.uploads[1].PeriodMonth)
	assert.Equal(t, store.uploads[0].BatchToken, store.uploads[1].BatchToken)
	assert.Equal(t, "2025-06", store.uploads[1].StartMonth)

	require.Len(t, store.assets, 2)
	// 같은 날이면 파일상 마지막 행
	assert.Equal(t, 700.0, store.assets[1].Amount)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.Local), store.assets[1].CreatedAt)
	assert.Len(t, res.Uploads, 2)
}

func TestPipeline_Errors(t *testing.T) {
	store := newFakeStore()
	p := NewPipeline(store, Options{})
	ctx := context.Background()

	_, err := p.Run(ctx, Request{Branch: "x", Filename: "a.csv", Content: []byte(juneCSV), PeriodYear: 2025, PeriodMonth: 5})
	assert.ErrorIs(t, err, ErrNoTransactions)

	_, err = p.Run(ctx, Request{Branch: "x", Filename: "a.csv", Content: []byte(juneCSV), StartMonth: "2025-6", EndMonth: "2025-06"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = p.Run(ctx, Request{Branch: "x", Filename: "a.csv", Content: []byte(juneCSV), StartMonth: "2025-07", EndMonth: "2025-06"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = p.Run(ctx, Request{Branch: "x", Filename: "a.csv", Content: []byte(juneCSV), PeriodYear: 2025, PeriodMonth: 13})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = p.Run(ctx, Request{Branch: "x", Filename: "a.csv", Content: []byte("날짜,내용,금액\nnot-a-date,x,1\n"), PeriodYear: 2025, PeriodMonth: 6})
	assert.ErrorIs(t, err, ErrNoTransactions)

	_, err = p.Run(ctx, Request{Branch: "x", Filename: "a.xls", Content: []byte("xx"), PeriodYear: 2025, PeriodMonth: 6})
	assert.ErrorIs(t, err, ledger.ErrUnreadable)

	// 입력 오류면 지점을 등록하지 않는다
	assert.Empty(t, store.branches)
}

func TestPipeline_AssetFailureIsWarning(t *testing.T) {
	store := newFakeStore()
	store.assetErr = errors.New("db down")
	res, err := NewPipeline(store, Options{}).Run(context.Background(), Request{
		UserID: 1, Branch: "강남점", Filename: "a.csv", Content: []byte(juneCSV), PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)
	assert.Len(t, store.uploads, 1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "db down")
}

func TestResult_Summary(t *testing.T) {
	store := newFakeStore(models.Rule{ID: 1, Keyword: "스타벅스", Target: models.TargetAny, Category: "카페", Priority: 100, IsActive: true})
	res, err := NewPipeline(store, Options{}).Run(context.Background(), Request{
		UserID: 1, Branch: "강남점", Filename: "a.csv", Content: []byte(juneCSV), PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	sum := res.Summary()
	require.Len(t, sum, 2)
	assert.Equal(t, "미분류", sum[0].Category)
	assert.Equal(t, "3000000", sum[0].Sum.String())
	assert.Equal(t, "카페", sum[1].Category)
	assert.Equal(t, 1, sum[1].Count)
}

func TestToTransaction_Balance(t *testing.T) {
	req := Request{UserID: 1, Branch: "강남점"}
	zero := decimal.Zero

	tx := toTransaction(req, ClassifiedRow{Row: ledger.Row{Date: time.Now(), Amount: decimal.NewFromInt(-1000)}})
	assert.Nil(t, tx.Balance)
	assert.Equal(t, "미분류", tx.Category)

	// 0 원 잔액은 비어 있는 잔액과 다르다
	tx = toTransaction(req, ClassifiedRow{Row: ledger.Row{Date: time.Now(), Amount: decimal.NewFromInt(-1000), Balance: &zero}})
	require.NotNil(t, tx.Balance)
	assert.Equal(t, 0.0, *tx.Balance)
}
