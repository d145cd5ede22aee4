package repository

import (
	"testing"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func questionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "question", "answer", "difficulty", "category"})
}

func countRows(n int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}
