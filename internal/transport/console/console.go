package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/sandevgo/slackrelay/internal/core"
	"github.com/sandevgo/slackrelay/pkg/log"
)

// Channel is the pseudo channel name used for messages typed at the console.
const Channel = "console"

type HandlerFunc func(ctx context.Context, msg core.IncomingMessage)

// Console feeds terminal lines into the relay pipeline and prints replies.
// It lets an operator try the bot without a Slack workspace.
type Console struct {
	rl        *readline.Instance
	workspace string
	handler   HandlerFunc
	out       io.Writer
	mu        sync.Mutex
}

func NewConsole(runtimePath, workspace string) (*Console, error) {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &Console{
		rl:        rl,
		workspace: workspace,
		out:       rl.Stdout(),
	}, nil
}

func (c *Console) Handle(handler HandlerFunc) {
	c.handler = handler
}

func (c *Console) Start(ctx context.Context) error {
	if c.handler == nil {
		return errors.New("console: no message handler registered")
	}

	logger := log.FromCtx(ctx)
	logger.Info().Msg("console chat started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		// Handled inline so replies print before the next prompt.
		c.handler(ctx, core.IncomingMessage{
			Text:      line,
			Workspace: c.workspace,
			Channel:   Channel,
		})
	}
}

func (c *Console) Shutdown(_ context.Context) error {
	if c.rl != nil {
		return c.rl.Close()
	}
	return nil
}

// Send prints the reply. Workspace and channel are ignored, there is only one terminal.
func (c *Console) Send(_ context.Context, _, _, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, "%s\n", text)
	return err
}
