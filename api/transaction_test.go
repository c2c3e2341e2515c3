package api

import (
	"testing"
	"time"

	"salonledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
}

func txRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "branch", "tx_date", "description", "amount", "balance", "category", "is_fixed"})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\? AND branch LIKE \\? AND \\(tx_date >= \\? AND tx_date < \\?\\)").
		WillReturnRows(txRows().
			AddRow(1, 1, "강남점", day(2025, 6, 3), "스타벅스 강남", -50000, 0, "카페", false).
			AddRow(2, 1, "강남점", day(2025, 6, 25), "월급", 3000000, 1200000, "미분류", false))

	router := newTestRouter(1, models.RoleOwner)
	router.GET("/manage", NewTransactionHandler(deps).ListTransactions)

	w := doJSON(router, "GET", "/manage?branch=gn&year=2025&month=6", "")
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["count"])
	assert.Equal(t, float64(1000), data["limit"])
	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	// 날짜 역순
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_ListTransactions_AdminReadsAll(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE branch LIKE \\? AND `transactions`.`deleted_at` IS NULL").
		WillReturnRows(txRows())

	router := newTestRouter(9, models.RoleAdmin)
	router.GET("/manage", NewTransactionHandler(deps).ListTransactions)

	w := doJSON(router, "GET", "/manage?branch=gn", "")
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Empty(t, decodeData(t, w)["items"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Assign_SaveRule(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions` SET").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT \\* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "description", "vendor_normalized"}).
			AddRow(1, 1, "스타벅스 강남 0612", "스타벅스 강남"))
	mock.ExpectExec("INSERT INTO `rules`").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/assign", NewTransactionHandler(deps).Assign)

	w := doJSON(router, "POST", "/assign", `{"transaction_ids":[1,2],"category":"카페","is_fixed":false,"save_rule":true}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["updated"])
	rule := data["rule"].(map[string]interface{})
	assert.Equal(t, "스타벅스 강남", rule["keyword"])
	assert.Equal(t, models.TargetAny, rule["target"])
	assert.Equal(t, float64(100), rule["priority"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_Assign_Validation(t *testing.T) {
	deps, _ := setupMockDB(t)
	router := newTestRouter(1, models.RoleOwner)
	router.POST("/assign", NewTransactionHandler(deps).Assign)

	assert.Equal(t, 400, doJSON(router, "POST", "/assign", `{"transaction_ids":[],"category":"카페"}`).Code)
	assert.Equal(t, 400, doJSON(router, "POST", "/assign", `{"transaction_ids":[1]}`).Code)
}

func TestLearnedKeyword(t *testing.T) {
	vendor := "스타벅스"
	blank := "  "
	assert.Equal(t, "스타벅스", learnedKeyword(models.Transaction{VendorNormalized: &vendor, Description: "x"}))
	assert.Equal(t, "내용", learnedKeyword(models.Transaction{VendorNormalized: &blank, Description: " 내용 "}))
	assert.Equal(t, "메모", learnedKeyword(models.Transaction{Memo: "메모"}))
	assert.Empty(t, learnedKeyword(models.Transaction{}))
}

func TestTransactionHandler_MarkFixed(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT `id` FROM `transactions`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/mark_fixed", NewTransactionHandler(deps).MarkFixed)

	w := doJSON(router, "POST", "/mark_fixed", `{"transaction_id":5,"is_fixed":true}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, true, decodeData(t, w)["is_fixed"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionHandler_MarkFixed_NotFound(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT `id` FROM `transactions`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newTestRouter(2, models.RoleOwner)
	router.POST("/mark_fixed", NewTransactionHandler(deps).MarkFixed)

	w := doJSON(router, "POST", "/mark_fixed", `{"transaction_id":5,"is_fixed":true}`)
	assert.Equal(t, 404, w.Code)
}

func TestSummarizeExpenses(t *testing.T) {
	txs := []models.Transaction{
		{TxDate: day(2025, 5, 1), Amount: -1000000, IsFixed: true, Category: "임대료"},
		{TxDate: day(2025, 5, 9), Amount: -30000, Category: "재료비"},
		{TxDate: day(2025, 5, 20), Amount: -2000000, Category: models.CategoryOwnerDividend},
		{TxDate: day(2025, 5, 25), Amount: 5000000, Category: "카드매출"},
		{TxDate: day(2025, 7, 1), Amount: -1, Category: "범위 밖"},
	}
	out := summarizeExpenses(txs, []string{"2025-05", "2025-06"})
	require.Len(t, out, 2)
	assert.Equal(t, "1000000", out[0].FixedExpense.String())
	assert.Equal(t, "30000", out[0].VariableExpense.String())
	assert.Equal(t, "2000000", out[0].OwnerDividend.String())
	assert.True(t, out[1].FixedExpense.IsZero())
	assert.True(t, out[1].VariableExpense.IsZero())
}

func TestTransactionHandler_Summary(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\? AND \\(branch = \\?").
		WillReturnRows(txRows().
			AddRow(1, 1, "강남점", day(2025, 6, 3), "스타벅스", -50000, 0, "카페", false))

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/summary", NewTransactionHandler(deps).Summary)

	w := doJSON(router, "POST", "/summary", `{"branch":"강남점","start_month":"2025-05","end_month":"2025-06"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	list := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, list, 2)
	june := list[1].(map[string]interface{})
	assert.Equal(t, "2025-06", june["month"])
	assert.Equal(t, float64(50000), june["variable_expense"])

	w = doJSON(router, "POST", "/summary", `{"branch":"강남점","start_month":"2025-06","end_month":"2025-05"}`)
	assert.Equal(t, 400, w.Code)
}

func TestTransactionHandler_LatestBalance(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\? AND \\(branch = \\? AND tx_date < \\? AND balance IS NOT NULL\\)").
		WillReturnRows(txRows().AddRow(2, 1, "강남점", day(2025, 6, 25), "월급", 3000000, 1200000, "미분류", false))
	mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(txRows())

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/latest-balance", NewTransactionHandler(deps).LatestBalance)

	w := doJSON(router, "POST", "/latest-balance", `{"branch":"강남점","end_month":"2025-06"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(1200000), data["balance"])
	assert.Equal(t, "2025-06-25", data["date"])

	w = doJSON(router, "POST", "/latest-balance", `{"branch":"강남점","end_month":"2024-01"}`)
	require.Equal(t, 200, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, float64(0), data["balance"])
	assert.Equal(t, "해당 기간 잔액 데이터 없음", data["message"])
}

func TestTransactionHandler_LatestBalance_ZeroBalance(t *testing.T) {
	deps, mock := setupMockDB(t)

	// 잔액이 0 원으로 기록된 행도 마지막 잔액이다
	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\? AND \\(branch = \\? AND tx_date < \\? AND balance IS NOT NULL\\)").
		WillReturnRows(txRows().AddRow(5, 1, "강남점", day(2025, 6, 30), "전액 이체", -800000, 0, "내수금", false))

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/latest-balance", NewTransactionHandler(deps).LatestBalance)

	w := doJSON(router, "POST", "/latest-balance", `{"branch":"강남점","end_month":"2025-06"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(0), data["balance"])
	assert.Equal(t, "2025-06-30", data["date"])
	assert.Nil(t, data["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBusinessInflow(t *testing.T) {
	txs := []models.Transaction{
		{Amount: 3000000, Category: "카드매출"},
		{Amount: 500000, Category: "내수금(대표)"},
		{Amount: 20000, Category: models.CategoryOtherIncome},
		{Amount: -40000, Category: "카드매출"},
		{Amount: 100000, Category: models.CategoryUncategorized},
	}
	assert.Equal(t, "3100000", businessInflow(txs).String())
}
