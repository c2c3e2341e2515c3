package api

import (
	"bytes"
	"testing"

	"salonledger/models"
	"salonledger/report"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func juneRows() *sqlmock.Rows {
	return txRows().
		AddRow(1, 1, "강남점", day(2025, 6, 3), "스타벅스 강남", -50000, 0, "카페", false).
		AddRow(2, 1, "강남점", day(2025, 6, 25), "월급", 3000000, 1200000, "미분류", false).
		AddRow(3, 1, "강남점", day(2025, 6, 26), "취소", 0, 0, "미분류", false)
}

func TestReportHandler_GenerateReport(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(juneRows())

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/reports", NewReportHandler(deps).GenerateReport)

	w := doJSON(router, "POST", "/reports", `{"year":2025,"month":6,"branch":"강남"}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, float64(3000000), summary["total_in"])
	assert.Equal(t, float64(-50000), summary["total_out"])
	assert.Equal(t, float64(2950000), summary["net"])
	assert.Len(t, data["income_details"], 1)
	assert.Len(t, data["expense_details"], 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportHandler_GenerateReport_Validation(t *testing.T) {
	deps, _ := setupMockDB(t)
	router := newTestRouter(1, models.RoleOwner)
	router.POST("/reports", NewReportHandler(deps).GenerateReport)

	assert.Equal(t, 400, doJSON(router, "POST", "/reports", `{"month":6}`).Code)
	assert.Equal(t, 400, doJSON(router, "POST", "/reports", `{"year":2025,"granularity":"year"}`).Code)

	// 시작월이 종료월보다 늦으면 빈 리포트 대신 400
	w := doJSON(router, "POST", "/reports", `{"year":2025,"start_month":7,"end_month":6}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "시작월")
	assert.Equal(t, 400, doJSON(router, "POST", "/reports", `{"year":2025,"granularity":"day","start_date":"2025-06-10","end_date":"2025-06-01"}`).Code)
}

func TestReportHandler_ExportReport(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(juneRows())

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/reports/export", NewReportHandler(deps).ExportReport)

	w := doJSON(router, "POST", "/reports/export", `{"year":2025,"month":6,"branch":"강남점"}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filename*=UTF-8''")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "요약")
}

func TestReportHandler_EmailReport_Disabled(t *testing.T) {
	deps, _ := setupMockDB(t)
	router := newTestRouter(1, models.RoleOwner)
	router.POST("/reports/email", NewReportHandler(deps).EmailReport)

	w := doJSON(router, "POST", "/reports/email", `{"year":2025,"month":6,"to":"owner@example.com"}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(router, "POST", "/reports/email", `{"year":2025,"month":6,"to":"not-an-email"}`)
	assert.Equal(t, 400, w.Code)
}

func TestReportTitle(t *testing.T) {
	assert.Equal(t, "강남점 2025년 6월 리포트", reportTitle(report.Filter{Year: 2025, Month: 6, Branch: "강남점"}))
	assert.Equal(t, "전체 지점 2025년 리포트", reportTitle(report.Filter{Year: 2025}))
	assert.Equal(t, "전체 지점 2025년 1~3월 리포트", reportTitle(report.Filter{Year: 2025, EndMonth: 3}))
	assert.Equal(t, "전체 지점 2025년 4월 리포트", reportTitle(report.Filter{Year: 2025, StartMonth: 4}))
}
