package utils

import (
	"strconv"
	"strings"
	"time"
)

// FormatCurrencyIDR memformat nominal rupiah (tanpa desimal)
// Contoh: 15000 -> "Rp 15.000", -2500 -> "-Rp 2.500"
func FormatCurrencyIDR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Tambahkan pemisah ribuan dari belakang
	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}

	return sign + "Rp " + strings.Join(parts, ".")
}

// FormatTime -> "15:04" di zona loc (nil = zona t), string kosong kalau waktu belum ada
func FormatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc != nil {
		return t.In(loc).Format("15:04")
	}
	return t.Format("15:04")
}
