package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database named after the test, so
// parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.InitDatabase(dsn)
	require.NoError(t, err)
	return db
}
