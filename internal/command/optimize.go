package command

import (
	"context"
	"fmt"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"go.uber.org/zap"
)

type OptimizeCommand struct {
	deps *Dependencies
}

func NewOptimizeCommand(deps *Dependencies) *OptimizeCommand {
	return &OptimizeCommand{deps: deps}
}

func (c *OptimizeCommand) Name() string {
	return "optimize"
}

func (c *OptimizeCommand) Usage() string {
	return "optimize <text>"
}

func (c *OptimizeCommand) Description() string {
	return c.deps.Formatter.Labels().Optimize
}

func (c *OptimizeCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	raw, _ := params["prompt"].(string)

	_ = c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatLoading())
	result, err := c.deps.Pipeline.Optimize(ctx, cmdCtx.SessionID, raw)
	if err != nil {
		c.deps.Logger.Warn("Optimize command failed",
			zap.String("session_id", cmdCtx.SessionID),
			zap.Error(err),
		)
		return c.deps.SendError(cmdCtx.SessionID, c.deps.Formatter.FormatError(err))
	}

	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatOptimized(result))
}

func ensureDeps(deps *Dependencies) error {
	if deps == nil {
		return fmt.Errorf("command dependencies not configured")
	}
	if deps.SendMessage == nil || deps.SendError == nil {
		return fmt.Errorf("message callbacks not configured")
	}
	if deps.Pipeline == nil || deps.Formatter == nil {
		return fmt.Errorf("pipeline services not configured")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return nil
}
