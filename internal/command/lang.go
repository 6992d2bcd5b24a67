package command

import (
	"context"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"go.uber.org/zap"
)

type LangCommand struct {
	deps *Dependencies
}

func NewLangCommand(deps *Dependencies) *LangCommand {
	return &LangCommand{deps: deps}
}

func (c *LangCommand) Name() string {
	return "lang"
}

func (c *LangCommand) Usage() string {
	return "lang <zh|en|ja|ko>"
}

func (c *LangCommand) Description() string {
	return c.deps.Formatter.Labels().LocaleChanged
}

func (c *LangCommand) Execute(_ context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if err := ensureDeps(c.deps); err != nil {
		return err
	}

	value, _ := params["locale"].(string)
	locale, ok := domain.LookupLocale(value)
	if !ok {
		c.deps.Logger.Warn("Rejected unsupported locale",
			zap.String("session_id", cmdCtx.SessionID),
			zap.String("value", value),
		)
		return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatLocaleInvalid(value, domain.SupportedLocales))
	}
	c.deps.Formatter.SetLocale(locale)
	cmdCtx.Locale = locale

	c.deps.Logger.Info("Interface locale changed",
		zap.String("session_id", cmdCtx.SessionID),
		zap.String("locale", locale.String()),
	)
	return c.deps.SendMessage(cmdCtx.SessionID, c.deps.Formatter.FormatLocaleChanged())
}
