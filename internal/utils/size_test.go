package utils_test

import (
	"testing"

	"github.com/temirov/repolens/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5242880, "5.0 MB"},
	}
	for _, testCase := range testCases {
		if formatted := utils.FormatFileSize(testCase.size); formatted != testCase.expected {
			t.Fatalf("size %d: expected %q, got %q", testCase.size, testCase.expected, formatted)
		}
	}
}
