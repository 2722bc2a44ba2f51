package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/quote-manager/internal/config"
	"github.com/javajoker/quote-manager/internal/database"
	"github.com/javajoker/quote-manager/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

// catalogFixture mirrors the worked example: A=100, B=180 (colors), C=25,
// D=15 and kit K=[B, C].
type catalogFixture struct {
	A, B, C, D, K models.Product
}

func createCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()

	f := catalogFixture{
		A: models.Product{Name: "Product A", Price: decimal.NewFromInt(100)},
		B: models.Product{Name: "Product B", Price: decimal.NewFromInt(180), HasColors: true, Colors: []string{"white", "black"}},
		C: models.Product{Name: "Product C", Price: decimal.NewFromInt(25)},
		D: models.Product{Name: "Product D", Price: decimal.RequireFromString("15.50")},
	}
	for _, p := range []*models.Product{&f.A, &f.B, &f.C, &f.D} {
		require.NoError(t, db.Create(p).Error)
	}

	f.K = models.Product{Name: "Kit K", IsKit: true, KitComponents: []uint{f.B.ID, f.C.ID}}
	require.NoError(t, db.Create(&f.K).Error)
	return f
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }
