package main

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kylesnowschwartz/support-chat/chat"
)

// watcherDebounce is the delay after the last file-write event before
// re-reading the log. Coalesces a burst of appended lines into one update.
const watcherDebounce = 500 * time.Millisecond

// tailUpdateMsg carries the full message list after an incremental read.
// The complete list is sent (not a diff) because appended lines may be
// older than the current tail and the UI regroups from scratch anyway.
type tailUpdateMsg struct {
	messages []chat.Message
	added    []chat.Message // messages read in this pass, for announcements
	skipped  int
}

// watcherErrMsg reports errors from the file watcher goroutine.
type watcherErrMsg struct {
	err error
}

// logWatcher monitors a JSONL chat log for appended lines and pushes the
// updated message list through a channel.
//
// All data processing (offset, messages) happens on the single run()
// goroutine. Timer callbacks send signals instead of calling methods
// directly, avoiding data races.
type logWatcher struct {
	path     string
	offset   int64
	messages []chat.Message
	sub      chan tailUpdateMsg
	errc     chan error
	done     chan struct{}
	signals  chan struct{} // debounced re-read trigger; capacity 1

	// Guards the debounce timer so stop() can cancel it safely.
	// Does NOT guard data fields, those are only touched by run().
	mu       sync.Mutex
	debounce *time.Timer
	stopOnce sync.Once
}

func newLogWatcher(path string, initial []chat.Message, initialOffset int64) *logWatcher {
	return &logWatcher{
		path:     path,
		offset:   initialOffset,
		messages: initial,
		sub:      make(chan tailUpdateMsg, 1),
		errc:     make(chan error, 1),
		done:     make(chan struct{}),
		signals:  make(chan struct{}, 1),
	}
}

// stop signals the watcher goroutine to exit and cancels any pending debounce.
// Safe to call more than once.
func (w *logWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
}

// sendSignal does a non-blocking send on the signals channel.
// If a signal is already pending, this is a no-op.
func (w *logWatcher) sendSignal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// run starts the fsnotify watcher loop. Intended to be called as a goroutine.
//
// Closes sub and errc on exit so blocked waitForTailUpdate/waitForWatcherErr
// Cmds unblock and return nil instead of leaking goroutines.
func (w *logWatcher) run() {
	defer close(w.sub)
	defer close(w.errc)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.errc <- err
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		w.errc <- err
		return
	}

	for {
		select {
		case <-w.done:
			return

		case <-w.signals:
			w.readAndSend()

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) {
				w.mu.Lock()
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(watcherDebounce, w.sendSignal)
				w.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal: forward to TUI, don't log to stderr (leaks through alt screen).
			w.forwardErr(err)
		}
	}
}

func (w *logWatcher) forwardErr(err error) {
	select {
	case w.errc <- err:
	default:
	}
}

// readAndSend reads the lines appended since the last offset and sends the
// merged list. Only called from run(), no synchronization needed on data
// fields.
func (w *logWatcher) readAndSend() {
	res, err := chat.ReadLogIncremental(w.path, w.offset)
	if err != nil {
		w.forwardErr(err)
		return
	}
	if len(res.Messages) == 0 && res.Skipped == 0 {
		w.offset = res.Offset
		return
	}
	w.offset = res.Offset
	w.messages = chat.SortByTimestamp(append(w.messages, res.Messages...))

	update := tailUpdateMsg{
		messages: w.messages,
		added:    res.Messages,
		skipped:  res.Skipped,
	}

	// Non-blocking send: drop stale update if receiver hasn't consumed yet.
	select {
	case w.sub <- update:
	default:
		select {
		case <-w.sub:
		default:
		}
		w.sub <- update
	}
}

// waitForTailUpdate blocks on the subscription channel and wraps the result
// in a tailUpdateMsg for the Bubble Tea runtime. Returns nil when the
// channel is closed (watcher stopped), unblocking the goroutine.
func waitForTailUpdate(sub chan tailUpdateMsg) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-sub
		if !ok {
			return nil
		}
		return u
	}
}

// waitForWatcherErr blocks on the error channel and wraps the result
// in a watcherErrMsg for the Bubble Tea runtime. Returns nil when the
// channel is closed (watcher stopped), unblocking the goroutine.
func waitForWatcherErr(errc chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-errc
		if !ok {
			return nil
		}
		return watcherErrMsg{err: err}
	}
}
