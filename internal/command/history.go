package command

import (
	"context"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

type HistoryCommand struct {
	deps *Dependencies
}

func NewHistoryCommand(deps *Dependencies) *HistoryCommand {
	return &HistoryCommand{deps: deps}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Usage() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return c.deps.Formatter.Labels().History
}

func (c *HistoryCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	state, err := c.deps.Pipeline.State(ctx, cmdCtx.SessionID)
	if err != nil {
		return c.deps.SendError(cmdCtx.SessionID, c.deps.Formatter.FormatError(err))
	}

	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatHistory(state.History))
}
