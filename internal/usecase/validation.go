package usecase

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
)

// normalizeJSONBlob treats empty and "null" blobs as absent and rejects
// anything that is not valid JSON.
func normalizeJSONBlob(field string, raw []byte) ([]byte, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if !sonic.Valid([]byte(trimmed)) {
		return nil, invalidField(field, "must be valid JSON")
	}
	return []byte(trimmed), nil
}

func normalizeCurrency(raw string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		return competition.DefaultCurrency, nil
	}
	if len(currency) != 3 {
		return "", invalidField("currency", "must be a 3-letter code")
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return "", invalidField("currency", "must be a 3-letter code")
		}
	}
	return currency, nil
}

func requireMinLength(field, value string, minLen int) error {
	if len([]rune(value)) < minLen {
		return invalidField(field, "must be at least "+strconv.Itoa(minLen)+" characters")
	}
	return nil
}
