package postgres

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func encodeJSON(value any, fallback string) string {
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return fallback
	}
	return string(encoded)
}
