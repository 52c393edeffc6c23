package chat

import (
	"bufio"
	"bytes"
	"io"
)

const (
	// initialBufSize is the starting buffer capacity for the line reader.
	initialBufSize = 64 * 1024

	// maxLineSize caps a single chat-log line. Longer lines (an inlined
	// base64 image, say) are skipped instead of failing the whole log.
	maxLineSize = 16 * 1024 * 1024
)

// lineReader yields the non-empty, newline-terminated lines of a JSONL
// stream, skipping lines longer than its limit. It counts every byte it
// consumes so callers can resume from an offset later. A last line with no
// newline yet is not consumed: it is left in Tail() and not counted, so a
// line still being written is read whole on the next pass. Call Err() after
// iteration for I/O errors.
type lineReader struct {
	r         *bufio.Reader
	maxLen    int // 0 means maxLineSize
	buf       []byte
	tail      []byte
	err       error
	bytesRead int64
	skipped   int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r:   bufio.NewReaderSize(r, initialBufSize),
		buf: make([]byte, 0, initialBufSize),
	}
}

// next returns the next non-empty line without its line ending, or
// ("", false) at EOF or on a read error.
func (lr *lineReader) next() ([]byte, bool) {
	for {
		line, err := lr.readLine()
		if err != nil {
			if err != io.EOF {
				lr.err = err
			}
			return nil, false
		}
		if len(line) > 0 {
			return line, true
		}
	}
}

// Err returns the first non-EOF read error.
func (lr *lineReader) Err() error {
	return lr.err
}

// BytesRead is the number of bytes consumed so far, newlines and skipped
// lines included. An unterminated tail is never counted.
func (lr *lineReader) BytesRead() int64 {
	return lr.bytesRead
}

// Skipped is the number of oversized lines dropped so far.
func (lr *lineReader) Skipped() int {
	return lr.skipped
}

// Tail is the unterminated remainder found at EOF, or nil. Oversized
// remainders are not kept.
func (lr *lineReader) Tail() []byte {
	return lr.tail
}

// readLine assembles one newline-terminated line from ReadSlice fragments.
// Oversized lines are drained and returned as empty so next() moves past
// them. Bytes are only counted once the terminating newline is seen.
func (lr *lineReader) readLine() ([]byte, error) {
	lr.buf = lr.buf[:0]
	oversized := false
	var pending int64

	limit := maxLineSize
	if lr.maxLen > 0 {
		limit = lr.maxLen
	}

	for {
		chunk, err := lr.r.ReadSlice('\n')
		pending += int64(len(chunk))
		terminated := err == nil

		if err != nil && err != bufio.ErrBufferFull {
			if n := len(lr.buf) + len(chunk); err == io.EOF && !oversized && n > 0 && n <= limit {
				lr.tail = append(lr.buf, chunk...)
			}
			return nil, err
		}

		if !oversized {
			lr.buf = append(lr.buf, chunk...)
			if terminated {
				lr.buf = bytes.TrimSuffix(lr.buf[:len(lr.buf)-1], []byte("\r"))
			}
			if len(lr.buf) > limit {
				oversized = true
				lr.buf = lr.buf[:0]
			}
		}

		if terminated {
			lr.bytesRead += pending
			if oversized {
				lr.skipped++
				return nil, nil
			}
			return lr.buf, nil
		}
	}
}
