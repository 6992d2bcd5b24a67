package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kapu/ai-creative-studio-go/internal/adapter"
	"github.com/kapu/ai-creative-studio-go/internal/command"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"go.uber.org/zap"
)

// Console reads input lines for one session and runs each as a command.
// Lines are handled one at a time, so a session never has two actions in flight.
type Console struct {
	sessionID  string
	adapter    *adapter.MessageAdapter
	formatter  *adapter.ResponseFormatter
	dispatcher command.Dispatcher
	out        io.Writer
	logger     *zap.Logger
}

func NewConsole(sessionID string, messageAdapter *adapter.MessageAdapter, formatter *adapter.ResponseFormatter, dispatcher command.Dispatcher, out io.Writer, logger *zap.Logger) *Console {
	return &Console{
		sessionID:  sessionID,
		adapter:    messageAdapter,
		formatter:  formatter,
		dispatcher: dispatcher,
		out:        out,
		logger:     logger,
	}
}

// NewConsole wires a console to the container's front-end.
func (c *Container) NewConsole(sessionID string, out io.Writer) *Console {
	return NewConsole(sessionID, c.MessageAdapter, c.Formatter, c.Dispatcher, out, c.Logger)
}

// Run processes lines from in until EOF, an exit command, or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	c.println(c.formatter.FormatWelcome())
	c.prompt()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if c.isExit(line) {
				return nil
			}
			c.handle(ctx, line)
			c.prompt()
		}
	}
}

func (c *Console) handle(ctx context.Context, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	parsed := c.adapter.ParseMessage(line)
	if parsed.Type == domain.CommandUnknown {
		c.println(c.formatter.FormatUnknown(parsed.RawMessage))
		return
	}

	cmdCtx := domain.NewCommandContext(c.sessionID, c.formatter.Locale(), parsed.RawMessage)
	if _, err := c.dispatcher.Publish(ctx, cmdCtx, command.CommandEvent{Type: parsed.Type, Params: parsed.Params}); err != nil {
		c.logger.Error("Command dispatch failed",
			zap.String("session_id", c.sessionID),
			zap.String("command", parsed.Type.String()),
			zap.Error(err),
		)
		c.println(c.formatter.FormatError(err))
	}
}

func (c *Console) isExit(line string) bool {
	trimmed := util.Normalize(line)
	prefix := c.adapter.Prefix()
	return trimmed == prefix+"exit" || trimmed == prefix+"quit"
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Console) println(message string) {
	fmt.Fprintln(c.out, message)
}
