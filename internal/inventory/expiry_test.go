package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dateFor(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("geçersiz test tarihi %q: %v", value, err)
	}
	return d
}

func TestClassifyExpiry_NoDate(t *testing.T) {
	today := dateFor(t, "2025-03-10")
	assert.Equal(t, ExpiryNone, ClassifyExpiry(today, nil))
}

func TestClassifyExpiry(t *testing.T) {
	today := dateFor(t, "2025-03-10")

	cases := []struct {
		name   string
		expiry string
		want   ExpiryStatus
	}{
		{"geçmiş tarih", "2025-03-09", ExpiryExpired},
		{"çok eski tarih", "2024-01-01", ExpiryExpired},
		{"bugün", "2025-03-10", ExpiryNear},
		{"7 gün sonra (sınır)", "2025-03-17", ExpiryNear},
		{"8 gün sonra", "2025-03-18", ExpiryGood},
		{"uzak tarih", "2026-01-01", ExpiryGood},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expiry := dateFor(t, tc.expiry)
			assert.Equal(t, tc.want, ClassifyExpiry(today, &expiry))
		})
	}
}

func TestClassifyExpiry_IgnoresTimeOfDay(t *testing.T) {
	// Gün içindeki saat farkı sınıflandırmayı değiştirmemeli
	today := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	expiry := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, ExpiryNear, ClassifyExpiry(today, &expiry))
}
