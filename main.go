package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mama165/sdk-go/logs"
	"github.com/muesli/termenv"

	"github.com/kylesnowschwartz/support-chat/chat"
	"github.com/kylesnowschwartz/support-chat/config"
	"github.com/kylesnowschwartz/support-chat/demo"
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
	viewPicker
)

// dumpWidth is the render width used by --dump.
const dumpWidth = 120

// liveRegion holds the latest announcement. Shared by pointer so the
// Announcer callback and every copy of the model see the same text.
type liveRegion struct {
	text       string
	politeness chat.Politeness
}

func (l *liveRegion) announce(text string, p chat.Politeness) {
	l.text = text
	l.politeness = p
}

type model struct {
	cfg config.Config
	now func() time.Time

	messages []chat.Message
	groups   []chat.DateGroup
	rows     []row
	expanded map[string]bool // by message ID, survives regrouping

	cursor int
	scroll int
	view   viewState
	width  int
	height int

	lineOffsets        []int // starting line of each row
	messageLines       []int // rendered height of each row
	totalRenderedLines int

	detailScroll    int
	detailMaxScroll int

	md        *mdRenderer
	jsonHL    *jsonHL
	relTime   *chat.RelativeTimeCache
	live      *liveRegion
	announcer *chat.Announcer

	// Demo mode; svc is nil when showing a chat log.
	svc          *demo.Service
	scenario     demo.Scenario
	composing    bool
	input        []rune
	qrSelected   map[int]bool // multiple-choice option indexes
	pickerCursor int
	generation   int // bumped on scenario change to drop pending steps

	// Log mode.
	logPath  string
	skipped  int // unreadable log lines so far
	watching bool
	watcher  *logWatcher
	tailSub  chan tailUpdateMsg
	tailErrc chan error

	lastErr  error
	dumpMode bool
}

func initialModel(cfg config.Config, msgs []chat.Message, hasDarkBg bool) model {
	live := &liveRegion{}
	m := model{
		cfg:        cfg,
		now:        time.Now,
		expanded:   make(map[string]bool),
		md:         newMDRenderer(hasDarkBg),
		jsonHL:     newJSONHL(hasDarkBg),
		relTime:    &chat.RelativeTimeCache{},
		live:       live,
		announcer:  chat.NewAnnouncer(live.announce, cfg.TimeFormat),
		qrSelected: make(map[int]bool),
	}
	m.setMessages(msgs)
	// A chat opens at its latest message.
	m.cursor = max(len(m.rows)-1, 0)
	return m
}

// newDemoModel returns a model driven by svc, which already holds scenario.
func newDemoModel(cfg config.Config, svc *demo.Service, scenario demo.Scenario, hasDarkBg bool) model {
	m := initialModel(cfg, svc.Messages(), hasDarkBg)
	m.svc = svc
	m.scenario = scenario
	return m
}

// setMessages regroups msgs and rebuilds the rows and scroll metrics.
// msgs must be sorted by timestamp.
func (m *model) setMessages(msgs []chat.Message) {
	m.messages = msgs
	m.groups = chat.GroupByDate(msgs, m.cfg.CurrentUser, m.cfg.GroupThreshold)
	m.rows = buildRows(m.groups, m.now(), m.cfg)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.computeLineOffsets()
}

// atEnd reports whether the cursor is on the newest message, in which case
// new messages are followed.
func (m model) atEnd() bool {
	return m.cursor >= len(m.rows)-1
}

// followTail moves the cursor to the newest message when wasAtEnd.
func (m *model) followTail(wasAtEnd bool) {
	if wasAtEnd && len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
	m.ensureCursorVisible()
}

func (m model) Init() tea.Cmd {
	if m.watching {
		return tea.Batch(
			waitForTailUpdate(m.tailSub),
			waitForWatcherErr(m.tailErrc),
		)
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.computeLineOffsets()
		m.ensureCursorVisible()
		if m.view == viewDetail {
			m.computeDetailMaxScroll()
		}
		return m, nil

	case tailUpdateMsg:
		wasAtEnd := m.atEnd()
		m.skipped += msg.skipped
		m.setMessages(msg.messages)
		for _, added := range msg.added {
			m.announcer.Message(added)
		}
		m.followTail(wasAtEnd)
		return m, waitForTailUpdate(m.tailSub)

	case watcherErrMsg:
		// Transient watcher errors: show them and keep going.
		m.lastErr = msg.err
		return m, waitForWatcherErr(m.tailErrc)

	case stepMsg:
		return m.runStep(msg)

	case tea.KeyMsg:
		switch m.view {
		case viewDetail:
			return m.updateDetail(msg)
		case viewPicker:
			return m.updatePicker(msg)
		default:
			if m.composing {
				return m.updateComposer(msg)
			}
			return m.updateList(msg)
		}

	case tea.MouseMsg:
		if m.view == viewDetail {
			return m.updateDetailMouse(msg)
		}
		return m.updateListMouse(msg)
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case viewDetail:
		return m.viewDetail()
	case viewPicker:
		return m.viewPicker()
	default:
		return m.viewList()
	}
}

// options are the parsed command-line arguments.
type options struct {
	dump     bool
	groups   bool
	scenario string
	user     string
	path     string
}

func parseArgs(args []string) (options, error) {
	opts := options{scenario: string(demo.ScenarioConversation)}
	for _, arg := range args {
		switch {
		case arg == "--dump":
			opts.dump = true
		case arg == "--groups":
			opts.groups = true
		case strings.HasPrefix(arg, "--scenario="):
			opts.scenario = strings.TrimPrefix(arg, "--scenario=")
		case strings.HasPrefix(arg, "--user="):
			opts.user = strings.TrimPrefix(arg, "--user=")
			if opts.user == "" {
				return opts, errors.New("--user needs a value")
			}
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown flag: %s", arg)
		default:
			if opts.path != "" {
				return opts, fmt.Errorf("unexpected argument: %s", arg)
			}
			opts.path = arg
		}
	}
	return opts, nil
}

// loadLog reads a chat log for display. An empty log is fine for live
// tailing but not for one-shot output.
func loadLog(path string, tail bool, log *slog.Logger) (chat.ReadResult, error) {
	res, err := chat.ReadLog(path)
	if errors.Is(err, chat.ErrEmptyLog) && tail {
		log.Info("chat log is empty, waiting for messages", "path", path)
		return res, nil
	}
	if err != nil {
		return res, err
	}
	if res.Skipped > 0 {
		log.Debug("skipped unreadable chat log lines", "path", path, "skipped", res.Skipped)
	}
	res.Messages = chat.SortByTimestamp(res.Messages)
	log.Info("chat log loaded", "path", path, "messages", len(res.Messages))
	return res, nil
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.user != "" {
		cfg.CurrentUser = opts.user
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)
	hasDarkBg := termenv.HasDarkBackground()
	oneShot := opts.dump || opts.groups

	var m model
	var res chat.ReadResult
	if opts.path != "" {
		res, err = loadLog(opts.path, !oneShot, log)
		if err != nil {
			return err
		}
		m = initialModel(cfg, res.Messages, hasDarkBg)
		m.logPath = opts.path
		m.skipped = res.Skipped
	} else {
		scenario, err := demo.ParseScenario(opts.scenario)
		if err != nil {
			return err
		}
		svc := demo.New(demo.WithUser(demo.Participant{ID: cfg.CurrentUser, Name: demo.DefaultUser.Name}))
		if err := svc.LoadScenario(scenario); err != nil {
			return err
		}
		log.Info("demo scenario loaded", "scenario", scenario, "messages", len(svc.Messages()))
		m = newDemoModel(cfg, svc, scenario, hasDarkBg)
	}

	switch {
	case opts.groups:
		return writeGroupTable(os.Stdout, m.groups, m.now(), cfg)
	case opts.dump:
		m.width = dumpWidth
		m.height = 1_000_000
		m.dumpMode = true
		m.computeLineOffsets()
		fmt.Println(m.View())
		return nil
	}

	if opts.path != "" {
		// Start the file watcher for live tailing.
		w := newLogWatcher(opts.path, res.Messages, res.Offset)
		go w.run()
		defer w.stop()
		m.watching = true
		m.watcher = w
		m.tailSub = w.sub
		m.tailErrc = w.errc
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
