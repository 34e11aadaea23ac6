package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProjectNextWeek(t *testing.T) {
	cases := []struct {
		last7 string
		want  int64
	}{
		{"0", 0},
		{"100.00", 110},
		{"99.99", 110},  // 109.989 -> 110
		{"45.45", 50},   // 49.995 -> 50
		{"1000.10", 1100}, // 1100.11 -> 1100
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.last7)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, ProjectNextWeek(d), "girdi: %s", tc.last7)
	}
}
