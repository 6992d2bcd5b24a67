package adapter

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/util"
)

var controlCharsPattern = regexp.MustCompile(`[\x00-\x08\x0B-\x1F\x7F]`)

// MessageAdapter turns terminal input lines into commands. Lines starting with
// the prefix are commands; anything else is a prompt to optimize.
type MessageAdapter struct {
	prefix string
}

func NewMessageAdapter(prefix string) *MessageAdapter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "/"
	}
	return &MessageAdapter{prefix: prefix}
}

type ParsedCommand struct {
	Type       domain.CommandType
	Params     map[string]any
	RawMessage string
}

func (ma *MessageAdapter) Prefix() string {
	return ma.prefix
}

func (ma *MessageAdapter) ParseMessage(line string) *ParsedCommand {
	text := strings.TrimSpace(line)
	if text == "" {
		return ma.createUnknownCommand("")
	}

	if !strings.HasPrefix(text, ma.prefix) {
		return ma.createOptimizeCommand(text, text)
	}

	parts := strings.Fields(strings.TrimSpace(text[len(ma.prefix):]))
	if len(parts) == 0 {
		return ma.createUnknownCommand(text)
	}

	command := util.Normalize(parts[0])
	args := parts[1:]

	switch {
	case ma.isOptimizeCommand(command):
		return ma.createOptimizeCommand(strings.Join(args, " "), text)
	case ma.isImageCommand(command):
		return ma.newCommand(domain.CommandImage, text)
	case ma.isVideoCommand(command):
		return &ParsedCommand{
			Type:       domain.CommandVideo,
			Params:     ma.parseVideoArgs(args),
			RawMessage: text,
		}
	case ma.isHistoryCommand(command):
		return ma.newCommand(domain.CommandHistory, text)
	case ma.isResetCommand(command):
		return ma.newCommand(domain.CommandReset, text)
	case ma.isLangCommand(command):
		cmd := ma.newCommand(domain.CommandLang, text)
		if len(args) > 0 {
			cmd.Params["locale"] = args[0]
		}
		return cmd
	case ma.isHelpCommand(command):
		return ma.newCommand(domain.CommandHelp, text)
	}

	return ma.createUnknownCommand(text)
}

func (ma *MessageAdapter) isOptimizeCommand(cmd string) bool {
	return slices.Contains([]string{"optimize", "opt", "优化", "最適化", "최적화"}, cmd)
}

func (ma *MessageAdapter) isImageCommand(cmd string) bool {
	return slices.Contains([]string{"image", "img", "图片", "画像", "이미지"}, cmd)
}

func (ma *MessageAdapter) isVideoCommand(cmd string) bool {
	return slices.Contains([]string{"video", "vid", "视频", "動画", "비디오"}, cmd)
}

func (ma *MessageAdapter) isHistoryCommand(cmd string) bool {
	return slices.Contains([]string{"history", "历史", "履歴", "기록"}, cmd)
}

func (ma *MessageAdapter) isResetCommand(cmd string) bool {
	return slices.Contains([]string{"reset", "重置", "リセット", "초기화"}, cmd)
}

func (ma *MessageAdapter) isLangCommand(cmd string) bool {
	return slices.Contains([]string{"lang", "language", "语言", "言語", "언어"}, cmd)
}

func (ma *MessageAdapter) isHelpCommand(cmd string) bool {
	return slices.Contains([]string{"help", "?", "帮助", "ヘルプ", "도움말"}, cmd)
}

// parseVideoArgs reads "[duration] [fps]". A non-numeric value is kept as -1
// so the video stage rejects it instead of silently using the default.
func (ma *MessageAdapter) parseVideoArgs(args []string) map[string]any {
	params := map[string]any{
		"duration": constants.VideoDefaults.DurationSeconds,
		"fps":      constants.VideoDefaults.FPS,
	}
	keys := []string{"duration", "fps"}
	for i, arg := range args {
		if i >= len(keys) {
			break
		}
		value, err := strconv.Atoi(arg)
		if err != nil {
			value = -1
		}
		params[keys[i]] = value
	}
	return params
}

func (ma *MessageAdapter) createOptimizeCommand(prompt, raw string) *ParsedCommand {
	sanitized := sanitizePrompt(prompt)
	cmd := ma.newCommand(domain.CommandOptimize, raw)
	cmd.Params["prompt"] = sanitized
	return cmd
}

func (ma *MessageAdapter) createUnknownCommand(raw string) *ParsedCommand {
	return ma.newCommand(domain.CommandUnknown, raw)
}

func (ma *MessageAdapter) newCommand(cmdType domain.CommandType, raw string) *ParsedCommand {
	return &ParsedCommand{
		Type:       cmdType,
		Params:     make(map[string]any),
		RawMessage: raw,
	}
}

// sanitizePrompt drops control characters (newlines and tabs are kept) and
// collapses surrounding whitespace.
func sanitizePrompt(text string) string {
	return strings.TrimSpace(controlCharsPattern.ReplaceAllString(text, ""))
}
