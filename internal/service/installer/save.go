package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/slackrelay/pkg/env"
)

// SaveEnvStep writes the collected configuration to <runtime>/.env.
type SaveEnvStep struct {
	runtimePath string
	err         error
}

func NewSaveEnvStep(runtimePath string) Step {
	return &SaveEnvStep{runtimePath: runtimePath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}
	if err := SaveEnv(s.runtimePath, state); err != nil {
		s.err = err
		return s, nil
	}
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return "Saving configuration...\n"
}

// SaveEnv refuses to overwrite an existing .env.
func SaveEnv(runtimePath string, state *InstallState) error {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	content, err := env.MarshalEnv(&state.Env)
	if err != nil {
		return err
	}

	return os.WriteFile(envPath, []byte(content), 0600)
}
