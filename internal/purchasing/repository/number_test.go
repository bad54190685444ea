package repository

import (
	"regexp"
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	day := time.Date(2024, 10, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"PR", 1, "PR-20241015-0001"},
		{"PO", 42, "PO-20241015-0042"},
		{"PI", 9999, "PI-20241015-9999"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.prefix, day, tt.seq); got != tt.want {
			t.Errorf("formatNumber(%s, %d) = %s, want %s", tt.prefix, tt.seq, got, tt.want)
		}
	}
}

func TestFormatNumberShape(t *testing.T) {
	pattern := regexp.MustCompile(`^(PR|PO|PI)-\d{8}-\d{4}$`)
	for _, prefix := range []string{"PR", "PO", "PI"} {
		got := formatNumber(prefix, time.Now(), 7)
		if !pattern.MatchString(got) {
			t.Errorf("%s does not match document number pattern", got)
		}
	}
}
