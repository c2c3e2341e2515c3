package api

import (
	"testing"

	"salonledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleHandler_CreateRule(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rules`").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/rules", NewRuleHandler(deps).CreateRule)

	w := doJSON(router, "POST", "/rules", `{"keyword":" 스타벅스 ","category":"카페","priority":200}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, "스타벅스", data["keyword"])
	assert.Equal(t, models.TargetAny, data["target"])
	assert.Equal(t, float64(200), data["priority"])
	assert.Equal(t, true, data["is_active"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleHandler_CreateRule_InactiveZeroPriority(t *testing.T) {
	deps, mock := setupMockDB(t)

	// 0 과 false 도 INSERT 에 그대로 들어가야 한다
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `rules` \\(`user_id`,`keyword`,`target`,`category`,`is_fixed`,`priority`,`is_active`,`created_at`,`updated_at`\\)").
		WithArgs(1, "스타", models.TargetVendor, "기타", sqlmock.AnyArg(), 0, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.POST("/rules", NewRuleHandler(deps).CreateRule)

	w := doJSON(router, "POST", "/rules", `{"keyword":"스타","category":"기타","target":"vendor","priority":0,"is_active":false}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	data := decodeData(t, w)
	assert.Equal(t, float64(0), data["priority"])
	assert.Equal(t, false, data["is_active"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleHandler_CreateRule_InvalidTarget(t *testing.T) {
	deps, _ := setupMockDB(t)
	router := newTestRouter(1, models.RoleOwner)
	router.POST("/rules", NewRuleHandler(deps).CreateRule)

	w := doJSON(router, "POST", "/rules", `{"keyword":"a","category":"b","target":"amount"}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(router, "POST", "/rules", `{"keyword":"   ","category":"b"}`)
	assert.Equal(t, 400, w.Code)
}

func TestRuleHandler_ListRules(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `rules` WHERE user_id = \\? ORDER BY priority DESC, id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "keyword", "category", "priority"}).
			AddRow(2, "스타벅스", "카페", 200).
			AddRow(1, "스타", "기타", 100))

	router := newTestRouter(1, models.RoleOwner)
	router.GET("/rules", NewRuleHandler(deps).ListRules)

	w := doJSON(router, "GET", "/rules", "")
	require.Equal(t, 200, w.Code)
	list := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleHandler_UpdateRule(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `rules`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "keyword", "category", "priority", "is_active"}).
			AddRow(2, 1, "스타벅스", "카페", 200, true))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `rules` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.PUT("/rules/:id", NewRuleHandler(deps).UpdateRule)

	w := doJSON(router, "PUT", "/rules/2", `{"category":"음료","is_active":false}`)
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "음료", data["category"])
	assert.Equal(t, false, data["is_active"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleHandler_UpdateRule_NotFound(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `rules`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := newTestRouter(1, models.RoleOwner)
	router.PUT("/rules/:id", NewRuleHandler(deps).UpdateRule)

	w := doJSON(router, "PUT", "/rules/9", `{"category":"음료"}`)
	assert.Equal(t, 404, w.Code)
}

func TestRuleHandler_DeleteRule(t *testing.T) {
	deps, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `rules`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `rules`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	router := newTestRouter(1, models.RoleOwner)
	router.DELETE("/rules/:id", NewRuleHandler(deps).DeleteRule)

	assert.Equal(t, 200, doJSON(router, "DELETE", "/rules/2", "").Code)
	assert.Equal(t, 404, doJSON(router, "DELETE", "/rules/3", "").Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
