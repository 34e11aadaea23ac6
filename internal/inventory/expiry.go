package inventory

import "time"

type ExpiryStatus string

const (
	ExpiryNone    ExpiryStatus = ""
	ExpiryExpired ExpiryStatus = "expired"
	ExpiryNear    ExpiryStatus = "near"
	ExpiryGood    ExpiryStatus = "good"
)

// son kullanma tarihi bugünden itibaren bu kadar gün içindeyse "near" sayılır
const nearExpiryDays = 7

// ClassifyExpiry son kullanma tarihini gün bazında sınıflandırır.
// Tarih yoksa boş durum döner; saat bileşenleri karşılaştırmaya girmez.
func ClassifyExpiry(today time.Time, expiry *time.Time) ExpiryStatus {
	if expiry == nil {
		return ExpiryNone
	}

	t := truncateToDay(today)
	d := truncateToDay(*expiry)

	switch {
	case d.Before(t):
		return ExpiryExpired
	case !d.After(t.AddDate(0, 0, nearExpiryDays)):
		return ExpiryNear
	default:
		return ExpiryGood
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
