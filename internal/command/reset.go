package command

import (
	"context"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

type ResetCommand struct {
	deps *Dependencies
}

func NewResetCommand(deps *Dependencies) *ResetCommand {
	return &ResetCommand{deps: deps}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Usage() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return c.deps.Formatter.Labels().ResetDone
}

func (c *ResetCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	if err := c.deps.Pipeline.Reset(ctx, cmdCtx.SessionID); err != nil {
		return c.deps.SendError(cmdCtx.SessionID, c.deps.Formatter.FormatError(err))
	}
	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatReset())
}
