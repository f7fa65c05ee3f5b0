package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full
// schema migrated. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps the schema visible across the
	// connection pool while staying private to this test.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&catalog.Review{},
		&trade.CartEntry{},
		&trade.Order{},
		&trade.OrderItem{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Test User", email)
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Save(t.Context(), user))
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		uuid.New(),
		name,
		decimal.RequireFromString(price),
		"A "+name,
		"general",
		stock,
		"https://img.example.com/"+name+".png",
	)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(t.Context(), product))
	return product
}
