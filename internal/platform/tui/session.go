package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/swapgrid/internal/core"
	"github.com/vovakirdan/swapgrid/internal/games/swap/levels"
	"github.com/vovakirdan/swapgrid/internal/registry"
)

// GameFactory creates a playable game for a board.
type GameFactory func(lvl levels.Level) registry.Game

// Boards lists the boards a session can choose from.
type Boards interface {
	Entries() ([]levels.Entry, error)
}

// SessionModel manages the full flow: board picker -> game -> picker.
// It is the top-level model for SSH sessions and for `play` without a board.
type SessionModel struct {
	boards   Boards
	factory  GameFactory
	config   core.RuntimeConfig
	logger   *log.Logger
	picker   PickerModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(boards Boards, factory GameFactory, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SessionModel{
		boards:  boards,
		factory: factory,
		config:  cfg,
		logger:  logger,
	}
	m.picker = m.newPicker()
	return m
}

func (m SessionModel) newPicker() PickerModel {
	entries, err := m.boards.Entries()
	if err != nil {
		m.logger.Error("cannot list boards", "error", err)
	}
	return NewPickerModel(entries, m.config.ScreenW, m.config.ScreenH)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updatePicker(msg)
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks left over from a finished game are dropped here.
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newPicker, cmd := m.picker.Update(msg)
	if p, ok := newPicker.(PickerModel); ok {
		m.picker = p
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		game := m.factory(selected.Level)
		m.logger.Info("board selected", "board", selected.Level.ID, "source", selected.Source)
		gm := NewModel(game, m.config, m.logger).WithMenu()
		m.game = &gm
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.picker = m.newPicker()
		return m, m.picker.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.picker.View()
}

// InGame reports whether a board is being played.
func (m SessionModel) InGame() bool {
	return m.game != nil
}

// RunSession runs the picker and game flow in the local terminal.
func RunSession(boards Boards, factory GameFactory, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(boards, factory, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
