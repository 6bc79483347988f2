package database

import (
	"bytes"
	"io"
	"testing"
	"time"

	"catalog/internal/config"
	"catalog/internal/models"
	"catalog/internal/testutil"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sqliteConfig() *config.Config {
	return &config.Config{
		DatabaseDriver:  config.DriverSQLite,
		DatabaseDSN:     testutil.SQLiteDSN(),
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig()
	cfg.DatabaseDriver = config.DriverMemory

	db, err := Open(cfg, quietLogger())
	assert.Nil(t, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no SQL dialect")
}

func TestOpen_MigrateAndClose(t *testing.T) {
	db, err := Open(sqliteConfig(), quietLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.Product{}))

	// Migrating an up-to-date schema is a no-op.
	require.NoError(t, Migrate(db))

	require.NoError(t, Close(db))
	assert.Error(t, sqlDB.Ping())
}

func TestOpen_DebugLevelTracesSQL(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	db, err := Open(sqliteConfig(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.Contains(t, buf.String(), "CREATE TABLE")
}
