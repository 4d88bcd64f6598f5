package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/slackrelay/internal/config"
)

type InputConfig struct {
	Title       string
	Placeholder string
	Default     string
	Secret      bool
	Required    bool
	Apply       func(state *InstallState, value string)
}

// InputStep collects a single text value.
type InputStep struct {
	cfg   InputConfig
	input textinput.Model
	err   string
}

func NewInputStep(cfg InputConfig) Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50
	ti.Placeholder = cfg.Placeholder
	if cfg.Placeholder == "" {
		ti.Placeholder = cfg.Default
	}
	if cfg.Secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &InputStep{cfg: cfg, input: ti}
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.cfg.Default
		}
		if value == "" && s.cfg.Required {
			s.err = "a value is required"
			return s, nil
		}
		s.cfg.Apply(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.cfg.Title + ":\n\n")
	b.WriteString(s.input.View() + "\n\n")
	if s.err != "" {
		b.WriteString(errorStyle.Render(s.err) + "\n\n")
	}
	b.WriteString(hintStyle.Render("(press enter to confirm)") + "\n")
	return b.String()
}

// ChoiceStep selects one option from a list.
type ChoiceStep struct {
	title   string
	choices []string
	cursor  int
	apply   func(state *InstallState, index int)
}

func NewChoiceStep(title string, choices []string, apply func(*InstallState, int)) Step {
	return &ChoiceStep{title: title, choices: choices, apply: apply}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		s.apply(state, s.cursor)
		return nil, nil
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", choice)) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("(press ctrl+c to quit)") + "\n")
	return b.String()
}

// MemoryLocationStep asks for the path or URL depending on the chosen source.
type MemoryLocationStep struct {
	inner Step
}

func NewMemoryLocationStep() Step {
	return &MemoryLocationStep{}
}

func (s *MemoryLocationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *MemoryLocationStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if s.inner == nil {
		if state.Env.MemorySource == config.MemorySourceURL {
			s.inner = NewInputStep(InputConfig{
				Title:   "Memory URL",
				Default: config.DefaultMemoryURL,
				Apply:   func(s *InstallState, v string) { s.Env.MemoryURL = v },
			})
		} else {
			s.inner = NewInputStep(InputConfig{
				Title:   "Memory file path",
				Default: "memory/launch_plan.txt",
				Apply:   func(s *InstallState, v string) { s.Env.MemoryPath = v },
			})
		}
		return s, s.inner.Init()
	}

	next, cmd := s.inner.Update(msg, state)
	if next == nil {
		return nil, nil
	}
	s.inner = next
	return s, cmd
}

func (s *MemoryLocationStep) View(state *InstallState) string {
	if s.inner == nil {
		return ""
	}
	return s.inner.View(state)
}
