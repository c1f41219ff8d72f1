package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyIDR(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{15000, "Rp 15.000"},
		{1250000, "Rp 1.250.000"},
		{-2500, "-Rp 2.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrencyIDR(tt.amount))
	}
}

func TestFormatTime(t *testing.T) {
	assert.Empty(t, FormatTime(nil, nil))
	ts := time.Date(2026, 3, 14, 7, 5, 0, 0, time.UTC)
	assert.Equal(t, "07:05", FormatTime(&ts, nil))
	assert.Equal(t, "14:05", FormatTime(&ts, time.FixedZone("WIB", 7*3600)))
}
