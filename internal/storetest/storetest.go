// Package storetest provides a migrated in-memory database for tests.
package storetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"github.com/GiorgiUbiria/skill_swap/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns an isolated, migrated sqlite database that is closed when
// the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := store.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with the given balance. The password is not a
// valid bcrypt hash; use the accounts service when login matters.
func CreateUser(t *testing.T, db *gorm.DB, name string, helpPoints int) *models.User {
	t.Helper()

	u := &models.User{
		Name:       name,
		Email:      strings.ToLower(name) + "-" + uuid.NewString()[:8] + "@example.com",
		Password:   "-",
		HelpPoints: helpPoints,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreatePost(t *testing.T, db *gorm.DB, owner *models.User, title string, typ models.PostType) *models.Post {
	t.Helper()

	p := &models.Post{
		Title:       title,
		Description: title + " description",
		Category:    "Music",
		Type:        typ,
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// HelpPoints reloads the balance of userID.
func HelpPoints(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()

	var u models.User
	require.NoError(t, db.First(&u, "id = ?", userID).Error)
	return u.HelpPoints
}
