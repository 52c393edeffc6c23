package chat

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadResult is the outcome of reading a chat log from some offset.
// Message timestamps are converted to the local time zone so day grouping
// follows the reader's calendar.
type ReadResult struct {
	Messages []Message
	Offset   int64 // byte offset just past the last consumed line
	Skipped  int   // malformed or oversized lines that were ignored
}

// ReadLog reads a whole JSONL chat log. An existing but empty log returns
// ErrEmptyLog.
func ReadLog(path string) (ReadResult, error) {
	res, err := ReadLogIncremental(path, 0)
	if err != nil {
		return res, err
	}
	if len(res.Messages) == 0 {
		return res, fmt.Errorf("%s: %w", path, ErrEmptyLog)
	}
	return res, nil
}

// ReadLogIncremental reads the lines appended to a chat log since offset.
// This is the building block for live tailing: the caller keeps the returned
// Offset and appends the new messages to what it already has.
func ReadLogIncremental(path string, offset int64) (ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReadResult{Offset: offset}, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return ReadResult{Offset: offset}, err
	}

	res := decodeLines(f)
	res.Offset += offset
	if res.err != nil {
		return res.ReadResult, fmt.Errorf("reading %s: %w", path, res.err)
	}
	return res.ReadResult, nil
}

type decodeResult struct {
	ReadResult
	err error
}

// decodeLines parses every line of r into messages. Offset in the result is
// relative to the start of r and stops before a partial last line.
func decodeLines(r io.Reader) decodeResult {
	lr := newLineReader(r)
	var res decodeResult
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		msg, ok := ParseMessage(line)
		if !ok {
			res.Skipped++
			continue
		}
		msg.Timestamp = msg.Timestamp.Local()
		res.Messages = append(res.Messages, msg)
	}
	res.Offset = lr.BytesRead()
	res.Skipped += lr.Skipped()

	// An unterminated last line is taken only when it already parses.
	// Otherwise it is left for the next read, which sees it finished.
	if tail := lr.Tail(); len(tail) > 0 {
		if msg, ok := ParseMessage(tail); ok {
			msg.Timestamp = msg.Timestamp.Local()
			res.Messages = append(res.Messages, msg)
			res.Offset += int64(len(tail))
		}
	}
	res.err = lr.Err()
	return res
}

// AppendLog appends messages to a JSONL chat log, creating it if needed.
func AppendLog(path string, msgs ...Message) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	for _, m := range msgs {
		if err := enc.Encode(m); err != nil {
			f.Close()
			return fmt.Errorf("encoding message %s: %w", m.ID, err)
		}
	}
	return f.Close()
}
