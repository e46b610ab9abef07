package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trail-cli/internal/model"
	"trail-cli/internal/store"
)

const lockTimeout = 5 * time.Second

// Run takes over the terminal with the interactive app. The project lock is
// held for the whole session; CLI invocations in other terminals queue
// behind it.
func Run(p *model.Project) error {
	applyColorProfilePreference()
	if cfg, err := store.LoadGlobalConfig(); err == nil {
		applyThemePreference(cfg.TUI.Theme)
	}

	lock, err := store.AcquireLock(p.Root, lockTimeout)
	if err != nil {
		return err
	}
	defer lock.Release()

	m := newAppModel(p)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
