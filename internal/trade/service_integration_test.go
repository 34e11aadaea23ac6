package trade_test

import (
	"os"
	"testing"

	"envanter-backend/internal/models"
	"envanter-backend/internal/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Stok kuralları veritabanına karşı test edilir; TEST_DATABASE_DSN tanımlı
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
		&models.Purchase{},
	))

	return db
}

// Her test kendi kullanıcısıyla çalışır, satırlar user_id ile izole olur.
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

func createTestProduct(t *testing.T, db *gorm.DB, userID uint, name string, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		UserID:       userID,
		Name:         name,
		CostPrice:    decimal.NewFromInt(8),
		SellingPrice: decimal.NewFromInt(12),
		Stock:        stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func reloadStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.Stock
}

func TestRecordSale_DecrementsStockExactly(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	product := createTestProduct(t, db, user.ID, "Kalem", 10)

	sale, err := trade.RecordSale(db, user.ID, trade.SaleInput{
		ProductID: product.ID,
		Quantity:  10,
		Amount:    decimal.NewFromInt(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, sale.Quantity)
	assert.Equal(t, 0, reloadStock(t, db, product.ID))

	// Stok bittikten sonra 1 adetlik satış bile reddedilmeli, durum değişmemeli
	_, err = trade.RecordSale(db, user.ID, trade.SaleInput{
		ProductID: product.ID,
		Quantity:  1,
		Amount:    decimal.NewFromInt(12),
	})

	var stockErr *trade.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 0, reloadStock(t, db, product.ID))

	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Where("user_id = ?", user.ID).Count(&saleCount).Error)
	assert.Equal(t, int64(1), saleCount)
}

func TestRecordSale_InsufficientReportsCurrentStock(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	product := createTestProduct(t, db, user.ID, "Defter", 3)

	_, err := trade.RecordSale(db, user.ID, trade.SaleInput{
		ProductID: product.ID,
		Quantity:  5,
		Amount:    decimal.NewFromInt(60),
	})

	var stockErr *trade.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 3, reloadStock(t, db, product.ID))
}

func TestRecordSale_ProductOfAnotherUserNotVisible(t *testing.T) {
	db := openTestDB(t)
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)
	product := createTestProduct(t, db, owner.ID, "Silgi", 10)

	_, err := trade.RecordSale(db, intruder.ID, trade.SaleInput{
		ProductID: product.ID,
		Quantity:  1,
		Amount:    decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, trade.ErrProductNotFound)
	assert.Equal(t, 10, reloadStock(t, db, product.ID))
}

func createTestSupplier(t *testing.T, db *gorm.DB, userID uint) *models.Supplier {
	t.Helper()

	supplier := models.Supplier{
		UserID:  userID,
		Name:    "Toptancı",
		Contact: "05551112233",
		Email:   "toptanci@example.com",
	}
	require.NoError(t, db.Create(&supplier).Error)
	return &supplier
}

func TestRecordPurchase_ExactNameMatchIncrementsStock(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	supplier := createTestSupplier(t, db, user.ID)
	product := createTestProduct(t, db, user.ID, "Widget", 3)

	purchase, stockUpdated, err := trade.RecordPurchase(db, user.ID, trade.PurchaseInput{
		SupplierID:  supplier.ID,
		ProductName: "Widget",
		Quantity:    5,
		TotalPrice:  decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.True(t, stockUpdated)
	assert.Equal(t, "Widget", purchase.ProductName)
	assert.Equal(t, 8, reloadStock(t, db, product.ID))
}

func TestRecordPurchase_NoMatchPersistsWithWarning(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	supplier := createTestSupplier(t, db, user.ID)
	other := createTestProduct(t, db, user.ID, "Makas", 7)

	purchase, stockUpdated, err := trade.RecordPurchase(db, user.ID, trade.PurchaseInput{
		SupplierID:  supplier.ID,
		ProductName: "Widget",
		Quantity:    5,
		TotalPrice:  decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.False(t, stockUpdated)
	assert.NotZero(t, purchase.ID)

	// Farklı isimli ürünün stoğu değişmemeli
	assert.Equal(t, 7, reloadStock(t, db, other.ID))
}

func TestRecordPurchase_MatchIsCaseSensitive(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)
	supplier := createTestSupplier(t, db, user.ID)
	product := createTestProduct(t, db, user.ID, "Widget", 3)

	_, stockUpdated, err := trade.RecordPurchase(db, user.ID, trade.PurchaseInput{
		SupplierID:  supplier.ID,
		ProductName: "widget",
		Quantity:    5,
		TotalPrice:  decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.False(t, stockUpdated)
	assert.Equal(t, 3, reloadStock(t, db, product.ID))
}

func TestRecordPurchase_UnknownSupplierRejected(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db)

	_, _, err := trade.RecordPurchase(db, user.ID, trade.PurchaseInput{
		SupplierID:  999999,
		ProductName: "Widget",
		Quantity:    1,
		TotalPrice:  decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, trade.ErrSupplierNotFound)
}
