package utils

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// CoerceQuantity membaca angka dari input JSON (number atau string).
// Seperti parseInt di browser: tanda dan digit di awal dipakai, sisanya diabaikan.
// Input yang tidak punya angka sama sekali menghasilkan fallback.
func CoerceQuantity(raw json.RawMessage, fallback int) int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return fallback
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	return ParseLeadingInt(s, fallback)
}

// MaxQuantity -> batas atas jumlah per input, angka yang lebih besar dipotong ke sini
const MaxQuantity = 999

// ParseLeadingInt membaca tanda dan digit di awal s, hasilnya dibatasi ke ±MaxQuantity
func ParseLeadingInt(s string, fallback int) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return fallback
	}
	negative := s[0] == '-'
	n, err := strconv.Atoi(s[:end])
	switch {
	case err != nil && !errors.Is(err, strconv.ErrRange):
		return fallback
	case n > MaxQuantity || (err != nil && !negative):
		return MaxQuantity
	case n < -MaxQuantity || (err != nil && negative):
		return -MaxQuantity
	}
	return n
}
