package dashboard_test

import (
	"os"
	"testing"
	"time"

	"envanter-backend/internal/dashboard"
	"envanter-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Özet toplamları veritabanına karşı test edilir; TEST_DATABASE_DSN tanımlı
// değilse testler atlanır.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN tanımlı değil, integration testleri atlanıyor")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Customer{},
		&models.Product{},
		&models.Sale{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{
		Username:     "test-" + uuid.NewString(),
		Email:        "test@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestProduct(t *testing.T, db *gorm.DB, userID uint, name string) *models.Product {
	t.Helper()

	product := models.Product{
		UserID:       userID,
		Name:         name,
		CostPrice:    decimal.NewFromInt(8),
		SellingPrice: decimal.NewFromInt(12),
		Stock:        100,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func addSale(t *testing.T, db *gorm.DB, userID, productID uint, amount string, date time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&models.Sale{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		Amount:    decimal.RequireFromString(amount),
		Date:      date,
	}).Error)
}

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)),
		"%s: %s bekleniyordu, %s geldi", label, want, got)
}

// Kuruş tutarlarının toplamı float kaymasına uğramadan kuruşu kuruşuna dönmeli.
func TestBuildSummary_DecimalExactTotals(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	product := createTestProduct(t, db, user.ID, "Kalem")
	now := time.Now()

	// 0.10 + 0.10 + 0.10 float ile 0.30000000000000004 olurdu
	addSale(t, db, user.ID, product.ID, "0.10", now)
	addSale(t, db, user.ID, product.ID, "0.10", now)
	addSale(t, db, user.ID, product.ID, "0.10", now)

	resp, err := dashboard.BuildSummary(db, user.ID, now)
	require.NoError(t, err)

	assertDecimalEqual(t, "0.30", resp.TotalSales, "total_sales")
	assertDecimalEqual(t, "0.30", resp.Last7DaysSales, "last_7_days_sales")
	// 0.30 * 1.10 = 0.33, en yakın tam sayıya yuvarlanır
	assert.Equal(t, int64(0), resp.PredictedNextWeek)
}

func TestBuildSummary_SevenDayWindowAndProjection(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	product := createTestProduct(t, db, user.ID, "Defter")
	now := time.Now()

	// Pencere dışı satış genel toplama girer, 7 günlük toplama girmez
	addSale(t, db, user.ID, product.ID, "500.00", now.AddDate(0, 0, -10))
	addSale(t, db, user.ID, product.ID, "100.10", now)
	addSale(t, db, user.ID, product.ID, "0.10", now)

	resp, err := dashboard.BuildSummary(db, user.ID, now)
	require.NoError(t, err)

	assertDecimalEqual(t, "600.20", resp.TotalSales, "total_sales")
	assertDecimalEqual(t, "100.20", resp.Last7DaysSales, "last_7_days_sales")
	// 100.20 * 1.10 = 110.22 -> 110
	assert.Equal(t, int64(110), resp.PredictedNextWeek)
}

func TestBuildSummary_IsolatedPerUser(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	alice := createTestUser(t, db)
	aliceProduct := createTestProduct(t, db, alice.ID, "Kalem")
	require.NoError(t, db.Create(&models.Supplier{UserID: alice.ID, Name: "Toptancı"}).Error)
	require.NoError(t, db.Create(&models.Customer{UserID: alice.ID, Name: "Ayşe"}).Error)
	addSale(t, db, alice.ID, aliceProduct.ID, "0.10", now)

	bob := createTestUser(t, db)
	bobProduct := createTestProduct(t, db, bob.ID, "Defter")
	addSale(t, db, bob.ID, bobProduct.ID, "100.00", now)

	aliceResp, err := dashboard.BuildSummary(db, alice.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceResp.TotalProducts)
	assert.Equal(t, int64(1), aliceResp.TotalSuppliers)
	assert.Equal(t, int64(1), aliceResp.TotalCustomers)
	assertDecimalEqual(t, "0.10", aliceResp.TotalSales, "alice total_sales")

	bobResp, err := dashboard.BuildSummary(db, bob.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobResp.TotalProducts)
	assert.Equal(t, int64(0), bobResp.TotalSuppliers)
	assertDecimalEqual(t, "100.00", bobResp.TotalSales, "bob total_sales")
	assertDecimalEqual(t, "100.00", bobResp.Last7DaysSales, "bob last_7_days_sales")
	// 100.00 * 1.10 = 110
	assert.Equal(t, int64(110), bobResp.PredictedNextWeek)
}
