package blobfs_test

import (
	"testing"

	"github.com/paulo-raca/blobfs"
)

func TestFlagsString(t *testing.T) {
	testCases := []struct {
		flag     blobfs.Flags
		expected string
	}{
		{blobfs.FlagDir, "DIR"},
		{blobfs.FlagCompressed, "COMPRESSED"},
		{blobfs.FlagDir | blobfs.FlagCompressed, "DIR|COMPRESSED"},
		{0, ""},
		{1 << 7, "UNKNOWN"},
	}

	for _, tc := range testCases {
		if got := tc.flag.String(); got != tc.expected {
			t.Errorf("Flags(%d).String() = %q, want %q", tc.flag, got, tc.expected)
		}
	}
}

func TestFlagsPredicates(t *testing.T) {
	if !blobfs.FlagDir.IsDir() {
		t.Error("FlagDir.IsDir() should be true")
	}
	if blobfs.FlagCompressed.IsDir() {
		t.Error("FlagCompressed.IsDir() should be false")
	}
	if !blobfs.FlagCompressed.IsCompressed() {
		t.Error("FlagCompressed.IsCompressed() should be true")
	}
	if blobfs.FlagDir.IsCompressed() {
		t.Error("FlagDir.IsCompressed() should be false")
	}
}
