package cmd

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"

	"drg-mod-manager/db"
	"drg-mod-manager/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is a very long mod name", 10, "this is..."},
		{"", 5, ""},
		{"abcdef", 3, "abc"},
		{"abcdef", 1, "a"},
		{"abcdef", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := truncate(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"duplicate profile", db.ErrDuplicateProfile, "a profile with that name already exists"},
		{"protected profile", db.ErrProtectedProfile, "the Default profile cannot be deleted"},
		{"unknown profile", db.ErrUnknownProfile, "no such profile"},
		{"unknown mod", db.ErrUnknownMod, "no such mod in this profile"},
		{"not installed", db.ErrNotInstalled, "mod must be installed before it can be enabled"},
		{"unknown version", db.ErrUnknownVersion, "no such version"},
		{"wrapped sentinel", fmt.Errorf("update status: %w", db.ErrNotInstalled), "mod must be installed before it can be enabled"},
		{"unexpected error", errors.New("disk on fire"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyStoreError(tt.err)
			if result != tt.expected {
				t.Errorf("classifyStoreError(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}
