package storage

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
)

func TestServerDSN(t *testing.T) {
	dsn, err := mysql.ParseDSN("user:secret@tcp(127.0.0.1:3306)/xlsxft_history?parseTime=true")
	require.NoError(t, err)

	server, err := mysql.ParseDSN(serverDSN(dsn))
	require.NoError(t, err)
	assert.Empty(t, server.DBName)
	assert.Equal(t, "user", server.User)
	assert.Equal(t, "127.0.0.1:3306", server.Addr)
	assert.Equal(t, "xlsxft_history", dsn.DBName, "original config untouched")
}

func TestIsValidDatabaseName(t *testing.T) {
	assert.True(t, isValidDatabaseName("xlsxft"))
	assert.True(t, isValidDatabaseName("xlsxft_2024"))
	assert.False(t, isValidDatabaseName(""))
	assert.False(t, isValidDatabaseName("x`; DROP DATABASE y"))
	assert.False(t, isValidDatabaseName("has-dash"))
}

func TestNewMySQLStorage_InvalidDSN(t *testing.T) {
	cfg := config.New()
	cfg.MySQLDSN = "not a dsn"
	_, err := NewMySQLStorage(cfg)
	assert.Error(t, err)
}

// Runs against a real server when XLSXFT_TEST_MYSQL_DSN is set.
func TestMySQLStorage_Integration(t *testing.T) {
	dsn := os.Getenv("XLSXFT_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("XLSXFT_TEST_MYSQL_DSN not set")
	}
	cfg := config.New()
	cfg.MySQLDSN = dsn
	st, err := NewMySQLStorage(cfg)
	require.NoError(t, err)
	defer st.Close()

	results := []domain.TestResult{{Case: domain.NewTestCase("test_set_selection01")}}
	failures := []domain.TestFailure{{TestName: "test_set_selection01", Kind: domain.KindExecution, ExitCode: 1}}
	require.NoError(t, st.Save(results, failures, time.Second, 1))

	out, err := st.Load()
	require.NoError(t, err)
	require.Len(t, out.Details, 1)
	assert.Equal(t, 1, out.Details[0].ExitCode)

	out.Details[0].Resolved = true
	require.NoError(t, st.SaveOutput(out))
	out, err = st.Load()
	require.NoError(t, err)
	assert.True(t, out.Details[0].Resolved)
	assert.False(t, errors.Is(err, ErrNoRuns))
}
