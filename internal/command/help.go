package command

import (
	"context"

	"github.com/kapu/ai-creative-studio-go/internal/adapter"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Usage() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return c.deps.Formatter.Labels().Title
}

func (c *HelpCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, _ map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	var entries []adapter.HelpEntry
	for _, cmd := range c.deps.Registry.Commands() {
		if cmd.Name() == c.Name() {
			continue
		}
		entries = append(entries, adapter.HelpEntry{Usage: cmd.Usage(), Description: cmd.Description()})
	}

	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatHelp(entries))
}

// RegisterDefaults registers every studio command on deps.Registry.
func RegisterDefaults(deps *Dependencies) *Registry {
	if deps.Registry == nil {
		deps.Registry = NewRegistry()
	}
	deps.Registry.Register(NewOptimizeCommand(deps))
	deps.Registry.Register(NewImageCommand(deps))
	deps.Registry.Register(NewVideoCommand(deps))
	deps.Registry.Register(NewHistoryCommand(deps))
	deps.Registry.Register(NewResetCommand(deps))
	deps.Registry.Register(NewLangCommand(deps))
	deps.Registry.Register(NewHelpCommand(deps))
	return deps.Registry
}
