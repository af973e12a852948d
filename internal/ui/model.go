package ui

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/llehouerou/presto/internal/config"
	"github.com/llehouerou/presto/internal/keymap"
	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/remote"
)

// Engine is the part of the playback handle the UI drives.
type Engine interface {
	Send(cmd playback.Command) error
	Playback() playback.Reader[playback.Snapshot]
	ShuffleOrder() playback.Reader[[]int]
}

// Options configures a Model.
type Options struct {
	Catalog      []library.Track
	Engine       Engine
	Controller   *remote.Controller
	Events       *playback.Subscription // optional
	Config       config.UIConfig
	ScrubSeconds int
}

// Model is the root bubbletea model.
type Model struct {
	Base
	catalog []library.Track
	lower   []string
	engine  Engine
	ctrl    *remote.Controller
	events  *playback.Subscription
	cfg     config.UIConfig
	scrub   int
	log     zerolog.Logger

	// selected is the catalog index under the cursor. It is shared with
	// the remote controller, which reads it from other goroutines.
	selected *atomic.Int64
	offset   int

	follow        bool
	pendingFollow int // catalog index to wait for before following, or -1
	reselect      *bool

	filtering bool
	filter    textinput.Model
	dirty     bool

	keys       *keymap.Resolver
	filterKeys *keymap.Resolver
	pendingKey string // first key of a two-key sequence

	snap  playback.Snapshot
	order []int

	status   string
	statusAt time.Time
}

// New creates the UI model and registers the cursor with the controller.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 256

	m := Model{
		catalog:       opts.Catalog,
		lower:         lowerLabels(lo.Map(opts.Catalog, func(t library.Track, _ int) string { return t.Display })),
		engine:        opts.Engine,
		ctrl:          opts.Controller,
		events:        opts.Events,
		cfg:           opts.Config,
		scrub:         max(opts.ScrubSeconds, 1),
		log:           zlog.With().Str("component", "ui").Logger(),
		selected:      &atomic.Int64{},
		follow:        opts.Config.FollowPlayback,
		pendingFollow: -1,
		filter:        ti,
		dirty:         true,
		keys:          keymap.NewResolver(keymap.ByContext(keymap.ContextList)),
		filterKeys:    keymap.NewResolver(keymap.ByContext(keymap.ContextFilter)),
	}
	m.sync()
	if d := m.display(); len(d) > 0 {
		m.setSelected(d[0])
	}

	sel := m.selected
	if m.ctrl != nil {
		m.ctrl.SetSelected(func() int { return int(sel.Load()) })
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), m.WatchEvents())
}

// Update implements tea.Model. Any change of the visible set is pushed
// to the engine as the new queue.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.flushQueue()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.scrollToSelected()
		return m, nil

	case TickMsg:
		m.sync()
		m.applyReselect()
		m.applyFollow()
		if m.status != "" && time.Since(m.statusAt) > StatusTimeout {
			m.status = ""
		}
		return m, TickCmd()

	case ErrorMsg:
		m.setError(playback.ErrorEvent(msg))
		return m, m.WatchEvents()

	case ClosedMsg:
		m.log.Info().Msg("playback engine stopped")
		return m, tea.Quit

	case QuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// Selected returns the catalog index under the cursor.
func (m Model) Selected() int {
	return int(m.selected.Load())
}

func (m *Model) setSelected(i int) {
	m.selected.Store(int64(i))
	m.scrollToSelected()
}

// sync reloads the shared playback state.
func (m *Model) sync() {
	m.snap = m.engine.Playback().Load()
	m.order = m.engine.ShuffleOrder().Load()
}

func (m Model) display() []int {
	return DisplayOrder(m.lower, m.snap.Shuffle, m.order, m.filter.Value())
}

// applyFollow moves the cursor to the playing track. After an explicit
// play request it waits until the engine reports that track, so the
// cursor does not bounce back to the previous one.
func (m *Model) applyFollow() {
	idx := m.snap.Index
	if idx < 0 || !m.follow || m.filtering {
		return
	}
	if m.pendingFollow >= 0 {
		if m.pendingFollow != idx {
			return
		}
		m.pendingFollow = -1
	}
	if m.Selected() != idx {
		m.setSelected(idx)
	}
}

// applyReselect puts the cursor on top once the engine has switched
// shuffle to the requested setting.
func (m *Model) applyReselect() {
	if m.reselect == nil || m.snap.Shuffle != *m.reselect {
		return
	}
	m.reselect = nil
	if d := m.display(); len(d) > 0 {
		m.setSelected(d[0])
	}
}

// ensureSelectedVisible moves the cursor to the first visible track when
// the selected one was filtered out.
func (m *Model) ensureSelectedVisible() {
	d := m.display()
	if len(d) == 0 {
		m.setSelected(0)
		return
	}
	if !slices.Contains(d, m.Selected()) {
		m.setSelected(d[0])
		return
	}
	m.scrollToSelected()
}

func (m *Model) flushQueue() {
	if !m.dirty {
		return
	}
	m.dirty = false
	m.send(playback.SetQueue{Indices: m.display()})
}

func (m *Model) send(cmd playback.Command) {
	if err := m.engine.Send(cmd); err != nil {
		m.log.Debug().Err(err).Type("command", cmd).Msg("command dropped")
	}
}

func (m *Model) setError(ev playback.ErrorEvent) {
	m.status = formatError(ev)
	m.statusAt = time.Now()
}
