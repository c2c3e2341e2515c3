package report

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestLoadEntries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "user_id", "branch", "tx_date", "description", "amount", "category", "is_fixed"}).
		AddRow(1, 1, "강남점", time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local), "스타벅스", -50000.0, "카페", false).
		AddRow(2, 1, "강남점", time.Date(2025, 6, 25, 0, 0, 0, 0, time.Local), "월급", 3000000.0, "미분류", false)
	mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE .*user_id = \\?.*branch LIKE").WillReturnRows(rows)

	entries, err := LoadEntries(context.Background(), db, Scope{UserID: 1}, Filter{Year: 2025, Month: 6, Branch: "강남"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "-50000", entries[0].Amount.String())
	assert.Equal(t, "카페", entries[0].Category)

	r := Build(entries, Filter{Year: 2025, Month: 6})
	assert.Equal(t, "2950000", r.Summary.Net.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
