// Package tui is the Bubble Tea front end: it maps keys to game
// actions, pumps the tick clock into the program, renders the board and
// talks to the leaderboard around run boundaries.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avolkov/snakeboard/internal/identity"
	"github.com/avolkov/snakeboard/internal/leaderboard"
	"github.com/avolkov/snakeboard/internal/snake"
)

// animInterval drives redraws during the death animation.
const animInterval = 50 * time.Millisecond

// tickMsg is one clock tick, fenced to a run so a stale timer can
// never advance a newer run.
type tickMsg struct{ run int }

// dyingDoneMsg fires when the dispersal sequence has fully elapsed.
type dyingDoneMsg struct{ run int }

// animMsg requests a redraw during the dying animation.
type animMsg struct{ run int }

// standingsMsg delivers freshly fetched leaderboard entries.
type standingsMsg struct{ entries []leaderboard.Entry }

// Options configures a session model.
type Options struct {
	Tuning snake.Tuning

	// Client is the leaderboard client; nil plays fully offline.
	Client *leaderboard.Client

	// StateDir persists the best score; empty disables persistence.
	StateDir string

	Width, Height int

	// Send injects messages into the running Bubble Tea program. The
	// tick clock lives on its own goroutine and this is its only way in.
	Send func(tea.Msg)
}

// Model is the Bubble Tea model for one player session.
type Model struct {
	game  *snake.Game
	clock *snake.Clock
	send  func(tea.Msg)

	client   *leaderboard.Client
	stateDir string

	entries []leaderboard.Entry
	best    int
	newBest bool

	keys KeyMap
	help help.Model

	width, height int
	quitting      bool
}

// NewModel creates a session model in the idle state.
func NewModel(opts Options) Model {
	best := 0
	if opts.StateDir != "" {
		best = identity.BestScore(opts.StateDir)
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		game:     snake.NewGame(opts.Tuning, 0),
		send:     opts.Send,
		client:   opts.Client,
		stateDir: opts.StateDir,
		best:     best,
		keys:     DefaultKeyMap(),
		help:     h,
		width:    opts.Width,
		height:   opts.Height,
	}
}

// Init fetches the standings for the idle screen.
func (m Model) Init() tea.Cmd {
	return m.fetchStandingsCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case animMsg:
		return m.handleAnim(msg)
	case dyingDoneMsg:
		return m.handleDyingDone(msg)
	case standingsMsg:
		m.entries = msg.entries
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopClock()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		if st := m.game.State(); st == snake.StateIdle || st == snake.StateGameOver {
			return m.startRun()
		}

	case key.Matches(msg, m.keys.Pause):
		switch m.game.State() {
		case snake.StatePlaying:
			m.game.TogglePause()
			m.stopClock()
		case snake.StatePaused:
			m.game.TogglePause()
			m.clock.Start(m.game.TickInterval())
		}

	case key.Matches(msg, m.keys.Up):
		m.game.Steer(snake.DirUp)
	case key.Matches(msg, m.keys.Down):
		m.game.Steer(snake.DirDown)
	case key.Matches(msg, m.keys.Left):
		m.game.Steer(snake.DirLeft)
	case key.Matches(msg, m.keys.Right):
		m.game.Steer(snake.DirRight)
	}
	return m, nil
}

// startRun begins a fresh run: the previous clock is stopped, the run
// identifier advances and a new clock is bound to it. A tick from the
// superseded clock would carry the old run id and be dropped.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	m.stopClock()
	m.game.Start()
	m.newBest = false

	run := m.game.Run()
	send := m.send
	m.clock = snake.NewClock(func() {
		send(tickMsg{run: run})
	})
	m.clock.Start(m.game.TickInterval())
	return m, nil
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.run != m.game.Run() || m.game.State() != snake.StatePlaying {
		return m, nil
	}

	before := m.game.TickInterval()
	m.game.Tick()

	if m.game.State() == snake.StateDying {
		m.stopClock()
		run := m.game.Run()
		wait := m.game.Plan().Duration()
		return m, tea.Batch(
			tea.Tick(wait, func(time.Time) tea.Msg { return dyingDoneMsg{run: run} }),
			tea.Tick(animInterval, func(time.Time) tea.Msg { return animMsg{run: run} }),
		)
	}

	// Speed ramp: any score change restarts the cadence immediately.
	if after := m.game.TickInterval(); after != before {
		m.clock.Reschedule(after)
	}
	return m, nil
}

func (m Model) handleAnim(msg animMsg) (tea.Model, tea.Cmd) {
	if msg.run != m.game.Run() || m.game.State() != snake.StateDying {
		return m, nil
	}
	run := msg.run
	return m, tea.Tick(animInterval, func(time.Time) tea.Msg { return animMsg{run: run} })
}

func (m Model) handleDyingDone(msg dyingDoneMsg) (tea.Model, tea.Cmd) {
	if msg.run != m.game.Run() {
		return m, nil
	}
	m.game.FinishDying()
	if m.game.State() != snake.StateGameOver {
		return m, nil
	}

	score := m.game.Score()
	if score > m.best {
		m.best = score
		m.newBest = true
		if m.stateDir != "" {
			identity.SaveBestScore(m.stateDir, score)
		}
	}
	return m, m.submitCmd(msg.run, score)
}

func (m Model) stopClock() {
	if m.clock != nil {
		m.clock.Stop()
	}
}

// fetchStandingsCmd loads the board off the update loop. Best-effort:
// a failure just leaves the panel empty.
func (m Model) fetchStandingsCmd() tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return standingsMsg{entries: client.Top(ctx, leaderboard.DefaultLimit)}
	}
}

// submitCmd posts the finished run's score (guarded to once per run
// inside the client) and refreshes the standings.
func (m Model) submitCmd(run, score int) tea.Cmd {
	client := m.client
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		client.Submit(ctx, run, score)
		return standingsMsg{entries: client.Top(ctx, leaderboard.DefaultLimit)}
	}
}

// Run wires a model and program together and blocks until exit.
func Run(opts Options) error {
	var p *tea.Program
	opts.Send = func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}
	m := NewModel(opts)
	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
