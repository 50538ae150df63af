package store

import (
	"testing"

	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestGormLogSkipsRecordNotFound(t *testing.T) {
	logs := observeLogs(t)
	db, err := Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var u models.User
	err = db.First(&u, "id = ?", "missing").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.FilterMessage("query failed").Len())
}

func TestGormLogReportsQueryErrors(t *testing.T) {
	logs := observeLogs(t)
	db, err := Open("sqlite", "file::memory:")
	require.NoError(t, err)

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)

	failed := logs.FilterMessage("query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Contains(t, failed[0].ContextMap()["sql"], "no_such_table")
}
