package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/confetti"
)

const (
	frameRate   = time.Second / 30
	stageHeight = 8
)

// Confetti is the store.Celebrator used while the TUI runs: it drops the
// default burst into the shared field and returns immediately. The model
// notices live particles and animates them.
type Confetti struct {
	Field *confetti.Field
}

func (c Confetti) Celebrate() {
	confetti.Burst(c.Field, confetti.DefaultBurst())
}

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// startAnimation returns the first frame tick when particles appeared and no
// animation is running yet.
func (m *Model) startAnimation() tea.Cmd {
	if m.field == nil || m.animating || m.field.Alive() == 0 {
		return nil
	}
	m.animating = true
	return nextFrame()
}

func (m *Model) stepAnimation() tea.Cmd {
	if m.field == nil {
		m.animating = false
		return nil
	}
	m.field.Step()
	if m.field.Alive() == 0 {
		m.animating = false
		return nil
	}
	return nextFrame()
}
