package database_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/changhyeonkim/sales-crm/internal/model"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	"github.com/changhyeonkim/sales-crm/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(testutil.NewTestConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_MigratesSchema(t *testing.T) {
	db := openMemory(t)

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable("users"))
	assert.True(t, migrator.HasTable("customer_table"))
	assert.True(t, migrator.HasIndex(&model.Customer{}, "idx_customer_owner_name"))
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestNew_CreatesDatabaseDirectory(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "crm.db")

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(cfg.Database.Path)
	assert.NoError(t, err)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := database.WithTransaction(ctx, db.DB, func(tx *gorm.DB) error {
		if err := tx.Create(model.NewUser("user1", "User", "hash")).Error; err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUniqueIndex_IsDuplicateKey(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, db.Create(model.NewUser("user1", "User", "hash")).Error)
	err := db.Create(model.NewUser("user1", "Other", "hash")).Error

	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))
}

func TestIsDuplicateKey(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated", gorm.ErrDuplicatedKey, true},
		{"wrapped", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"raw sqlite message", errors.New("UNIQUE constraint failed: users.login_id"), true},
		{"other", gorm.ErrRecordNotFound, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, database.IsDuplicateKey(tc.err))
		})
	}
}

func TestMigrate_Reset(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Create(model.NewUser("user1", "User", "hash")).Error)

	// blocked in production
	prod := testutil.NewTestConfig()
	prod.App.Env = "prod"
	prod.Database.IsReset = true
	assert.Error(t, database.Migrate(db.DB, prod))

	// allowed elsewhere: tables come back empty
	cfg := testutil.NewTestConfig()
	cfg.Database.IsReset = true
	require.NoError(t, database.Migrate(db.DB, cfg))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
