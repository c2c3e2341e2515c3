package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNarrator struct {
	text   string
	err    error
	prompt string
}

func (s *stubNarrator) Narrate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func fixedClock() time.Time {
	return time.Date(2025, 7, 1, 9, 0, 0, 0, time.Local)
}

func expectBreakEvenLoads(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT \\* FROM `salon_monthly_data` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "branch", "month", "card_sales"}).
			AddRow(1, 1, "강남점", "2025-06", 10000000))
	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\?").
		WillReturnRows(txRows().
			AddRow(1, 1, "강남점", day(2025, 6, 5), "임대료", -2000000, 0, "임대료", true).
			AddRow(2, 1, "강남점", day(2025, 6, 25), "급여", -3000000, 0, "급여", false))
	mock.ExpectQuery("SELECT \\* FROM `designer_salaries` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "branch", "name", "rank", "month", "total_amount", "sales"}).
			AddRow(1, 1, "강남점", "김하나", models.RankDesigner, "2025-06", 3000000, 6000000).
			AddRow(2, 1, "강남점", "이셋", models.RankIntern, "2025-06", 1500000, 0))
	mock.ExpectQuery("SELECT \\* FROM `designers` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "branch", "name", "rank"}))
}

func TestAnalysisHandler_BreakEven(t *testing.T) {
	deps, mock := setupMockDB(t)
	narrator := &stubNarrator{text: "고정비 대비 매출이 충분합니다."}
	deps.Narrator = narrator

	expectBreakEvenLoads(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `analysis_histories`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	h := NewAnalysisHandler(deps)
	h.now = fixedClock
	router := newTestRouter(1, models.RoleOwner)
	router.POST("/break-even", h.BreakEven)

	w := doJSON(router, "POST", "/break-even", `{"branch":"강남점","start_month":"2025-06","end_month":"2025-06"}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "강남점 / 2025-07-01 / 2025-06 분석", data["title"])
	assert.Equal(t, true, data["analysis_ok"])
	assert.Equal(t, "고정비 대비 매출이 충분합니다.", data["analysis"])
	assert.Contains(t, narrator.prompt, "김하나")

	result := data["result"].(map[string]interface{})
	lines := result["lines"].([]interface{})
	// 인턴은 분담 대상이 아니다
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "김하나", line["name"])
	assert.Equal(t, float64(2000000), line["fixed_share"])
	assert.Equal(t, float64(6000000), line["personal_sales"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisHandler_BreakEven_NarratorFailure(t *testing.T) {
	deps, mock := setupMockDB(t)
	deps.Narrator = &stubNarrator{err: errors.New("모델 호출 실패: timeout")}

	expectBreakEvenLoads(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `analysis_histories`").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/break-even", NewAnalysisHandler(deps).BreakEven)

	w := doJSON(router, "POST", "/break-even", `{"branch":"강남점","start_month":"2025-06","end_month":"2025-06"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, false, data["analysis_ok"])
	assert.Equal(t, "모델 호출 실패: timeout", data["analysis_error"])
	assert.NotNil(t, data["result"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisHandler_BreakEven_Invalid(t *testing.T) {
	deps, mock := setupMockDB(t)
	router := newTestRouter(1, models.RoleOwner)
	router.POST("/break-even", NewAnalysisHandler(deps).BreakEven)

	assert.Equal(t, 400, doJSON(router, "POST", "/break-even", `{"branch":"강남점"}`).Code)
	assert.Equal(t, 400, doJSON(router, "POST", "/break-even", `{"branch":"강남점","start_month":"2025-06","end_month":"2025-01"}`).Code)
	assert.Equal(t, 400, doJSON(router, "POST", "/break-even", `{"branch":"강남점","start_month":"6월","end_month":"2025-06"}`).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisHandler_Health(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `salon_monthly_data`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "branch", "month", "card_sales", "pass_paid", "pass_used", "visitors_total", "returning_visitors", "working_days"}).
			AddRow(1, 1, "강남점", "2025-06", 20000000, 3000000, 1000000, 250, 150, 25))
	mock.ExpectQuery("SELECT \\* FROM `transactions`").
		WillReturnRows(txRows().
			AddRow(1, 1, "강남점", day(2025, 6, 5), "임대료", -2000000, 0, "임대료", true).
			AddRow(2, 1, "강남점", day(2025, 6, 12), "재료상", -1200000, 0, models.CategoryMaterial, false))
	mock.ExpectQuery("SELECT \\* FROM `designer_salaries`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "month", "total_amount"}).
			AddRow(1, "김하나", "2025-06", 6000000))
	mock.ExpectQuery("SELECT \\* FROM `transactions` .*balance IS NOT NULL.*ORDER BY tx_date DESC, id DESC").
		WillReturnRows(txRows().
			AddRow(3, 1, "강남점", day(2025, 6, 28), "카드입금", 500000, 30000000, "카드매출", false))
	mock.ExpectQuery("SELECT \\* FROM `assets_log`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "branch", "type", "direction", "amount"}).
			AddRow(1, 1, "강남점", models.AssetTypeDeposit, models.DirectionIncrease, 10000000))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `analysis_histories`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/health", NewAnalysisHandler(deps).Health)

	w := doJSON(router, "POST", "/health", `{"branch":"강남점","start_month":"2025-06","end_month":"2025-06","narrate":false}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, false, data["analysis_ok"])
	assert.Equal(t, "문장 생성을 요청하지 않았습니다", data["analysis_error"])

	result := data["result"].(map[string]interface{})
	months := result["months"].([]interface{})
	require.Len(t, months, 1)
	month := months[0].(map[string]interface{})
	figures := month["figures"].(map[string]interface{})
	assert.Equal(t, float64(20000000), figures["total_sales"])
	assert.Equal(t, float64(80000), figures["average_spend"])
	assert.Equal(t, float64(30), figures["labor_ratio"])
	// 마지막 달에는 현금 완충률과 부채비율이 붙는다
	assert.Len(t, month["verdicts"], 12)
	assert.NotEmpty(t, result["final_grade"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisHandler_ListAnalyses(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("FROM `analysis_histories` WHERE kind = \\? AND `analysis_histories`.`deleted_at` IS NULL ORDER BY created_at DESC, id DESC LIMIT \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "branch", "kind", "title"}).
			AddRow(2, 3, "강남점", models.AnalysisKindHealth, "강남점 / 2025-07-01 / 2025-06 분석").
			AddRow(1, 1, "홍대점", models.AnalysisKindHealth, "홍대점 / 2025-07-01 / 2025-06 분석"))

	router := newTestRouter(9, models.RoleViewer)
	router.GET("/analyses", NewAnalysisHandler(deps).ListAnalyses)

	w := doJSON(router, "GET", "/analyses?kind=health", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["count"])
	assert.Equal(t, float64(50), data["limit"])

	assert.Equal(t, 400, doJSON(router, "GET", "/analyses?kind=unknown", "").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisHandler_GetAnalysis(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `analysis_histories` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "result"}).
			AddRow(5, 1, models.AnalysisKindBreakEven, `{"analysis_ok":false}`))
	mock.ExpectQuery("SELECT \\* FROM `analysis_histories` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newTestRouter(1, models.RoleOwner)
	router.GET("/analyses/:id", NewAnalysisHandler(deps).GetAnalysis)

	w := doJSON(router, "GET", "/analyses/5", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, models.AnalysisKindBreakEven, decodeData(t, w)["kind"])

	assert.Equal(t, 404, doJSON(router, "GET", "/analyses/6", "").Code)
	assert.Equal(t, 400, doJSON(router, "GET", "/analyses/abc", "").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisHandler_DeleteAnalysis(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `analysis_histories` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	admin := newTestRouter(1, models.RoleAdmin)
	admin.DELETE("/analyses/:id", NewAnalysisHandler(deps).DeleteAnalysis)
	w := doJSON(admin, "DELETE", "/analyses/5", "")
	require.Equal(t, 200, w.Code, w.Body.String())

	owner := newTestRouter(2, models.RoleOwner)
	owner.DELETE("/analyses/:id", NewAnalysisHandler(deps).DeleteAnalysis)
	assert.Equal(t, 403, doJSON(owner, "DELETE", "/analyses/5", "").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
