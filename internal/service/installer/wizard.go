package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/slackrelay/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step represents a single step in the setup wizard
type Step interface {
	Init() tea.Cmd
	// Update returns nil when the step is complete.
	Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd)
	View(state *InstallState) string
}

type nextMsg struct{}

func getSteps(runtimePath string) []Step {
	return []Step{
		NewInputStep(InputConfig{
			Title:       "Slack Bot Token (xoxb-...)",
			Placeholder: "xoxb-...",
			Secret:      true,
			Required:    true,
			Apply:       func(s *InstallState, v string) { s.Env.SlackBotToken = v },
		}),
		NewInputStep(InputConfig{
			Title:       "Slack App-Level Token for Socket Mode (xapp-...)",
			Placeholder: "xapp-...",
			Secret:      true,
			Required:    true,
			Apply:       func(s *InstallState, v string) { s.Env.SlackAppToken = v },
		}),
		NewInputStep(InputConfig{
			Title:   "Slack workspace",
			Default: "secondstate",
			Apply:   func(s *InstallState, v string) { s.Env.Workspace = v },
		}),
		NewInputStep(InputConfig{
			Title:   "Slack channel to listen on",
			Default: "collaborative-chat",
			Apply:   func(s *InstallState, v string) { s.Env.Channel = v },
		}),
		NewInputStep(InputConfig{
			Title:       "OpenAI API Key",
			Placeholder: "sk-...",
			Secret:      true,
			Required:    true,
			Apply:       func(s *InstallState, v string) { s.Env.OpenAIAPIKey = v },
		}),
		NewChoiceStep("Where should the launch plan memory come from?",
			[]string{"Local file", "Remote URL"},
			func(s *InstallState, i int) {
				if i == 1 {
					s.Env.MemorySource = config.MemorySourceURL
				} else {
					s.Env.MemorySource = config.MemorySourceFile
				}
			}),
		NewMemoryLocationStep(),
		NewChoiceStep("Post a memory status line before every reply?",
			[]string{"No", "Yes"},
			func(s *InstallState, i int) { s.Env.Diagnostics = i == 1 }),
		NewSaveEnvStep(runtimePath),
	}
}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
}

func newModel(steps []Step) model {
	return model{
		steps: steps,
		state: NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	next, cmd := m.steps[m.currentStep].Update(msg, m.state)
	if next == nil {
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	m.steps[m.currentStep] = next
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up slackrelay") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes <runtimePath>/.env on success.
func RunWizard(runtimePath string) (*InstallState, error) {
	p := tea.NewProgram(newModel(getSteps(runtimePath)), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting {
		return nil, fmt.Errorf("setup interrupted")
	}
	if final.currentStep < len(final.steps) {
		return nil, fmt.Errorf("setup did not complete")
	}
	return final.state, nil
}
