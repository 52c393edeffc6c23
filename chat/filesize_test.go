package chat_test

import (
	"testing"

	"github.com/kylesnowschwartz/support-chat/chat"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		decimals int
		want     string
	}{
		{0, 1, "0 B"},
		{-5, 1, "0 B"},
		{1, 1, "1 B"},
		{1023, 1, "1023 B"},
		{1024, 1, "1 KB"},
		{1536, 1, "1.5 KB"},
		{262144, 1, "256 KB"},
		{1047552, 1, "1023 KB"},
		{1048576, 1, "1 MB"},
		{1572864, 1, "1.5 MB"},
		{1288490189, 1, "1.2 GB"},
		{2684354560, 1, "2.5 GB"},
		{1099511627776, 1, "1 TB"},
		{10995116277760, 1, "10 TB"},
		{1125899906842624, 1, "1024 TB"},
		{1536, 0, "2 KB"},
		{1536, 2, "1.50 KB"},
		{1234567, 3, "1.177 MB"},
		{1024, 2, "1 KB"},
		{1536, -1, "2 KB"},
	}
	for _, tt := range tests {
		if got := chat.FormatFileSize(tt.bytes, tt.decimals); got != tt.want {
			t.Errorf("FormatFileSize(%d, %d) = %q, want %q", tt.bytes, tt.decimals, got, tt.want)
		}
	}
}
