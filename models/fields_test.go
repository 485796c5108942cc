package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Super Admin", "superadmin"},
		{"superadmin", "superadmin"},
		{"SuperAdmin ", "superadmin"},
		{"  super\tadmin", "superadmin"},
		{"FARMER", "farmer"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeRole(c.in), "input %q", c.in)
	}
}

func TestIsSuperAdmin(t *testing.T) {
	assert.True(t, IsSuperAdmin("Super Admin"))
	assert.True(t, IsSuperAdmin("SUPERADMIN"))
	assert.False(t, IsSuperAdmin("admin"))
	assert.False(t, IsSuperAdmin("farmer"))
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole("Admin"))
	assert.True(t, IsAdminRole("super admin"))
	assert.False(t, IsAdminRole("expert"))
}

func TestPhoneRE(t *testing.T) {
	valid := []string{"1234567890", "+911234567890", "123456789012345"}
	for _, p := range valid {
		assert.True(t, PhoneRE.MatchString(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"123456789",        // too short
		"1234567890123456", // too long
		"12345 67890",      // embedded space
		"12-34567890",      // punctuation
		"12345678901+",     // plus not leading
		"",
	}
	for _, p := range invalid {
		assert.False(t, PhoneRE.MatchString(p), "expected %q to be invalid", p)
	}
}

func TestParseFieldTime(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got, ok := ParseFieldTime("2025-06-01")
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ParseFieldTime("2025-06-01T00:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ParseFieldTime(want)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = ParseFieldTime("not a date")
	assert.False(t, ok)
	_, ok = ParseFieldTime(nil)
	assert.False(t, ok)
}
