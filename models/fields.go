package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhoneRE validates phone numbers: 10-15 digits, optional leading '+'.
var PhoneRE = regexp.MustCompile(`^\+?\d{10,15}$`)

// NormalizeRole lowercases a role and strips all whitespace, so
// "Super Admin", "superadmin" and "SuperAdmin " compare equal.
func NormalizeRole(role string) string {
	lowered := strings.ToLower(role)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered)
}

func IsSuperAdmin(role string) bool {
	return NormalizeRole(role) == "superadmin"
}

func IsAdminRole(role string) bool {
	n := NormalizeRole(role)
	return n == "admin" || n == "superadmin"
}

// AsString reads a document field as a string, empty when absent.
func AsString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

// AsInt reads a document field as an int, tolerating the numeric types the
// store may hand back.
func AsInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseFieldTime handles date/time values arriving either as native
// timestamps or as ISO-formatted strings. The gateway does not normalize
// them, so every caller goes through here.
func ParseFieldTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// TimeField renders a parsed date/time field back to its canonical string
// form, or returns the raw string when it cannot be parsed.
func TimeField(v interface{}) string {
	if t, ok := ParseFieldTime(v); ok {
		if s, isString := v.(string); isString {
			return s
		}
		return t.Format(time.RFC3339)
	}
	return AsString(v)
}
