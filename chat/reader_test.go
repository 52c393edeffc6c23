package chat_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/kylesnowschwartz/support-chat/chat"
)

const (
	lineUser  = `{"id":"m1","type":"text","senderId":"user-1","senderName":"You","timestamp":"2025-01-15T10:00:00Z","status":"read","content":{"text":"hello"}}`
	lineAgent = `{"id":"m2","type":"text","senderId":"agent-1","senderName":"Sarah","timestamp":"2025-01-15T10:00:30Z","status":"sent","content":{"text":"hi there"}}`
	lineFile  = `{"id":"m3","type":"file","senderId":"agent-1","senderName":"Sarah","timestamp":"2025-01-15T10:01:00Z","status":"sent","content":{"fileName":"guide.pdf","fileSize":262144,"fileType":"application/pdf","downloadUrl":"https://example.com/guide.pdf"}}`
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLog(t *testing.T) {
	path := writeLog(t, lineUser+"\n"+lineAgent+"\n"+lineFile+"\n")

	res, err := chat.ReadLog(path)
	if err != nil {
		t.Fatalf("ReadLog error: %v", err)
	}
	if want := []string{"m1", "m2", "m3"}; !slices.Equal(ids(res.Messages), want) {
		t.Errorf("ids = %v, want %v", ids(res.Messages), want)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
	info, _ := os.Stat(path)
	if res.Offset != info.Size() {
		t.Errorf("Offset = %d, want file size %d", res.Offset, info.Size())
	}
	if loc := res.Messages[0].Timestamp.Location(); loc != time.Local {
		t.Errorf("timestamp location = %v, want Local", loc)
	}
	fc, ok := res.Messages[2].Content.(chat.FileContent)
	if !ok || fc.FileSize != 262144 {
		t.Errorf("file content = %#v", res.Messages[2].Content)
	}
}

func TestReadLog_SkipsMalformedLines(t *testing.T) {
	content := "\n" +
		lineUser + "\n" +
		"not json\n" +
		`{"type":"text","content":{"text":"no id"}}` + "\n" +
		`{"id":"x","type":"video","content":{}}` + "\n" +
		"\n" +
		lineAgent + "\n"
	path := writeLog(t, content)

	res, err := chat.ReadLog(path)
	if err != nil {
		t.Fatalf("ReadLog error: %v", err)
	}
	if want := []string{"m1", "m2"}; !slices.Equal(ids(res.Messages), want) {
		t.Errorf("ids = %v, want %v", ids(res.Messages), want)
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
}

func TestReadLog_Empty(t *testing.T) {
	path := writeLog(t, "\n\n")

	_, err := chat.ReadLog(path)
	if !errors.Is(err, chat.ErrEmptyLog) {
		t.Errorf("err = %v, want ErrEmptyLog", err)
	}
}

func TestReadLog_Missing(t *testing.T) {
	_, err := chat.ReadLog(filepath.Join(t.TempDir(), "missing.jsonl"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestReadLogIncremental(t *testing.T) {
	path := writeLog(t, lineUser+"\n")

	first, err := chat.ReadLogIncremental(path, 0)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first.Messages) != 1 {
		t.Fatalf("first read got %d messages, want 1", len(first.Messages))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(lineAgent + "\n" + lineFile + "\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	second, err := chat.ReadLogIncremental(path, first.Offset)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if want := []string{"m2", "m3"}; !slices.Equal(ids(second.Messages), want) {
		t.Errorf("second read ids = %v, want %v", ids(second.Messages), want)
	}
	info, _ := os.Stat(path)
	if second.Offset != info.Size() {
		t.Errorf("Offset = %d, want %d", second.Offset, info.Size())
	}

	third, err := chat.ReadLogIncremental(path, second.Offset)
	if err != nil {
		t.Fatalf("third read: %v", err)
	}
	if len(third.Messages) != 0 || third.Offset != second.Offset {
		t.Errorf("third read = %d messages at offset %d, want none at %d", len(third.Messages), third.Offset, second.Offset)
	}
}

func TestReadLogIncremental_ResumesAfterPartialLine(t *testing.T) {
	half := len(lineAgent) / 2
	path := writeLog(t, lineUser+"\n"+lineAgent[:half])

	first, err := chat.ReadLogIncremental(path, 0)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if want := []string{"m1"}; !slices.Equal(ids(first.Messages), want) {
		t.Errorf("first read ids = %v, want %v", ids(first.Messages), want)
	}
	if first.Skipped != 0 {
		t.Errorf("first read Skipped = %d, want 0", first.Skipped)
	}
	if want := int64(len(lineUser) + 1); first.Offset != want {
		t.Errorf("first read Offset = %d, want %d", first.Offset, want)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(lineAgent[half:] + "\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	second, err := chat.ReadLogIncremental(path, first.Offset)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if want := []string{"m2"}; !slices.Equal(ids(second.Messages), want) {
		t.Errorf("second read ids = %v, want %v", ids(second.Messages), want)
	}
	if second.Skipped != 0 {
		t.Errorf("second read Skipped = %d, want 0", second.Skipped)
	}
	info, _ := os.Stat(path)
	if second.Offset != info.Size() {
		t.Errorf("second read Offset = %d, want %d", second.Offset, info.Size())
	}
}

func TestReadLog_CompleteLastLineWithoutNewline(t *testing.T) {
	path := writeLog(t, lineUser+"\n"+lineAgent)

	res, err := chat.ReadLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"m1", "m2"}; !slices.Equal(ids(res.Messages), want) {
		t.Errorf("ids = %v, want %v", ids(res.Messages), want)
	}
	if want := int64(len(lineUser) + 1 + len(lineAgent)); res.Offset != want {
		t.Errorf("Offset = %d, want %d", res.Offset, want)
	}
}

func TestAppendLog_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.jsonl")
	ts := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)
	msgs := []chat.Message{
		textMsg("m1", "user-1", ts),
		systemMsg("s1", ts.Add(time.Second)),
		{
			ID: "i1", Type: chat.TypeImage, SenderID: "agent-1", SenderName: "Sarah",
			Timestamp: ts.Add(2 * time.Second), Status: chat.StatusDelivered,
			Content: chat.ImageContent{ThumbnailURL: "t.png", FullURL: "f.png", AltText: "diagram", Width: 640, Height: 480},
		},
	}

	if err := chat.AppendLog(path, msgs[:2]...); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}
	if err := chat.AppendLog(path, msgs[2]); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	res, err := chat.ReadLog(path)
	if err != nil {
		t.Fatalf("ReadLog: %v", err)
	}
	if len(res.Messages) != len(msgs) {
		t.Fatalf("got %d messages, want %d", len(res.Messages), len(msgs))
	}
	for i, got := range res.Messages {
		want := msgs[i]
		if got.ID != want.ID || got.Type != want.Type || got.SenderID != want.SenderID || got.Status != want.Status {
			t.Errorf("message %d = %+v, want %+v", i, got, want)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("message %d timestamp = %v, want %v", i, got.Timestamp, want.Timestamp)
		}
		if got.Content != want.Content {
			t.Errorf("message %d content = %#v, want %#v", i, got.Content, want.Content)
		}
	}
}
