package chat

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

// newLineReaderWithMax creates a lineReader with a small line limit for
// testing. Production code uses newLineReader which defaults to maxLineSize.
func newLineReaderWithMax(r io.Reader, max int) *lineReader {
	lr := newLineReader(r)
	lr.maxLen = max
	return lr
}

func readAll(lr *lineReader) []string {
	var got []string
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		got = append(got, string(line))
	}
	return got
}

func TestLineReader(t *testing.T) {
	tests := []struct {
		name        string
		maxLen      int
		input       string
		want        []string
		wantSkipped int
		wantTail    string
	}{
		{
			name:   "normal lines",
			input:  "aaa\nbbb\nccc\n",
			maxLen: 100,
			want:   []string{"aaa", "bbb", "ccc"},
		},
		{
			name:        "skips oversized line",
			input:       "short\n" + strings.Repeat("x", 50) + "\nafter\n",
			maxLen:      30,
			want:        []string{"short", "after"},
			wantSkipped: 1,
		},
		{
			name:        "all lines oversized",
			input:       strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 50) + "\n",
			maxLen:      30,
			want:        nil,
			wantSkipped: 2,
		},
		{
			name:   "empty input",
			input:  "",
			maxLen: 100,
			want:   nil,
		},
		{
			name:   "blank lines skipped",
			input:  "aaa\n\n\nbbb\n",
			maxLen: 100,
			want:   []string{"aaa", "bbb"},
		},
		{
			name:     "unterminated last line left as tail",
			input:    "aaa\nbbb",
			maxLen:   100,
			want:     []string{"aaa"},
			wantTail: "bbb",
		},
		{
			name:     "only a partial line",
			input:    `{"id":"m1","sen`,
			maxLen:   100,
			want:     nil,
			wantTail: `{"id":"m1","sen`,
		},
		{
			name:   "oversized partial line not kept",
			input:  "aaa\n" + strings.Repeat("x", 50),
			maxLen: 30,
			want:   []string{"aaa"},
		},
		{
			name:   "exact limit kept",
			input:  strings.Repeat("x", 30) + "\n",
			maxLen: 30,
			want:   []string{strings.Repeat("x", 30)},
		},
		{
			name:        "one over limit skipped",
			input:       strings.Repeat("x", 31) + "\n",
			maxLen:      30,
			want:        nil,
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := newLineReaderWithMax(strings.NewReader(tt.input), tt.maxLen)
			got := readAll(lr)
			if err := lr.Err(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if lr.Skipped() != tt.wantSkipped {
				t.Errorf("Skipped() = %d, want %d", lr.Skipped(), tt.wantSkipped)
			}
			if got := string(lr.Tail()); got != tt.wantTail {
				t.Errorf("Tail() = %q, want %q", got, tt.wantTail)
			}
		})
	}
}

func TestLineReaderIOError(t *testing.T) {
	ioErr := errors.New("disk read failed")
	r := io.MultiReader(
		strings.NewReader("aaa\nbbb\n"),
		iotest.ErrReader(ioErr),
	)

	lr := newLineReaderWithMax(r, 100)
	got := readAll(lr)

	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(got), got)
	}
	if !errors.Is(lr.Err(), ioErr) {
		t.Fatalf("Err() = %v, want %v", lr.Err(), ioErr)
	}
}

func TestLineReaderBytesRead(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   int64
	}{
		{"terminated lines", "aaa\nbbb\nccc\n", 100, 12},
		{"skipped line counted", "short\n" + strings.Repeat("x", 50) + "\nafter\n", 30, 63},
		{"unterminated tail not counted", "aaa\nbbb", 100, 4},
		{"crlf endings", "aaa\r\nbbb\r\n", 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := newLineReaderWithMax(strings.NewReader(tt.input), tt.maxLen)
			readAll(lr)
			if lr.Err() != nil {
				t.Fatalf("unexpected error: %v", lr.Err())
			}
			if lr.BytesRead() != tt.want {
				t.Errorf("BytesRead() = %d, want %d", lr.BytesRead(), tt.want)
			}
		})
	}
}
