package inventory

import (
	"strings"
)

var placeholders = map[string]struct{}{
	"to be filled by o.e.m.": {},
	"default string":         {},
	"system serial number":   {},
	"board serial number":    {},
	"chassis serial number":  {},
	"system sku number":      {},
	"asset tag":              {},
	"asset-1234567890":       {},
	"not specified":          {},
	"not applicable":         {},
	"not available":          {},
	"none":                   {},
	"n/a":                    {},
	"0":                      {},
	"123456789":              {},
	"0123456789":             {},

	"00000000-0000-0000-0000-000000000000": {},
	"ffffffff-ffff-ffff-ffff-ffffffffffff": {},
}

// Clean trims the value and returns an empty string if it is one of
// the placeholders firmware vendors leave in identification fields.
func Clean(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := placeholders[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// IsPlaceholder returns true if the value carries no information.
func IsPlaceholder(value string) bool {
	return Clean(value) == ""
}
