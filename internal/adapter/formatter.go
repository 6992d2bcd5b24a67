package adapter

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kapu/ai-creative-studio-go/internal/constants"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/internal/util"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
)

// HelpEntry is one line of the help listing.
type HelpEntry struct {
	Usage       string
	Description string
}

type helpView struct {
	Title      string
	Prefix     string
	Commands   []HelpEntry
	PromptHint string
}

type historyRow struct {
	Time   string
	Action string
	Input  string
	Output string
}

type historyView struct {
	Title   string
	Entries []historyRow
}

// ResponseFormatter renders pipeline results for the terminal in the active locale.
type ResponseFormatter struct {
	prefix string

	mu     sync.RWMutex
	locale domain.Locale
}

func NewResponseFormatter(prefix string, locale domain.Locale) *ResponseFormatter {
	if strings.TrimSpace(prefix) == "" {
		prefix = "/"
	}
	if !locale.IsValid() {
		locale = domain.LocaleChinese
	}
	return &ResponseFormatter{prefix: prefix, locale: locale}
}

func (f *ResponseFormatter) Locale() domain.Locale {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.locale
}

func (f *ResponseFormatter) SetLocale(locale domain.Locale) {
	if !locale.IsValid() {
		locale = domain.LocaleChinese
	}
	f.mu.Lock()
	f.locale = locale
	f.mu.Unlock()
}

func (f *ResponseFormatter) Labels() Labels {
	return LabelsFor(f.Locale())
}

func (f *ResponseFormatter) FormatWelcome() string {
	labels := f.Labels()
	return fmt.Sprintf("%s\n%s (%shelp)", labels.Title, labels.PromptLabel, f.prefix)
}

func (f *ResponseFormatter) FormatLoading() string {
	return "⏳ " + f.Labels().Loading
}

func (f *ResponseFormatter) FormatOptimized(result *domain.OptimizedResult) string {
	labels := f.Labels()
	if result == nil {
		return "❌ " + labels.ErrorPrefix
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ %s (%s)\n\n", labels.OptimizeSuccess, formatElapsed(result.Elapsed.Seconds())))
	sb.WriteString(fmt.Sprintf("📝 %s\n%s\n\n", labels.OptimizedPrompt, result.OptimizedPrompt))
	sb.WriteString(fmt.Sprintf("🌐 %s\n%s\n\n", labels.EnglishPrompt, result.EnglishPrompt))
	sb.WriteString(fmt.Sprintf("%simage  %s\n", f.prefix, labels.GenerateImage))
	sb.WriteString(fmt.Sprintf("%svideo [%d-%d] [%d-%d]  %s",
		f.prefix,
		constants.VideoLimits.MinDurationSeconds, constants.VideoLimits.MaxDurationSeconds,
		constants.VideoLimits.MinFPS, constants.VideoLimits.MaxFPS,
		labels.GenerateVideo,
	))
	return sb.String()
}

// FormatImage renders an image result; savedPath is where the caller wrote it.
func (f *ResponseFormatter) FormatImage(result *domain.ImageResult, savedPath string) string {
	labels := f.Labels()
	if result == nil || result.Image == nil {
		return "❌ " + labels.ErrorPrefix
	}

	img := result.Image
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🖼️ %s (%s)\n", labels.GeneratedImage, formatElapsed(result.Elapsed.Seconds())))
	sb.WriteString(fmt.Sprintf("   %dx%d %s\n", img.Width, img.Height, img.MIMEType))
	if savedPath != "" {
		sb.WriteString(fmt.Sprintf("   %s\n", savedPath))
	}
	sb.WriteString(fmt.Sprintf("   %s: %s", labels.EnglishPrompt, f.truncatePrompt(img.EnglishPrompt)))
	return sb.String()
}

func (f *ResponseFormatter) FormatVideo(result *domain.VideoResult) string {
	labels := f.Labels()
	if result == nil || result.Video == nil {
		return "❌ " + labels.ErrorPrefix
	}

	video := result.Video
	fps := labels.ModelDefault
	if video.FPS > 0 {
		fps = strconv.Itoa(video.FPS)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 %s (%s)\n", labels.GeneratedVideo, formatElapsed(result.Elapsed.Seconds())))
	sb.WriteString(fmt.Sprintf("   %s\n", video.Path))
	sb.WriteString(fmt.Sprintf("   %s: %d · %s: %s · %s · %s\n",
		labels.VideoDuration, video.DurationSeconds,
		labels.VideoFPS, fps,
		video.MIMEType, formatBytes(video.Size),
	))
	sb.WriteString(fmt.Sprintf("   %s: %s", labels.EnglishPrompt, f.truncatePrompt(video.EnglishPrompt)))
	return sb.String()
}

func (f *ResponseFormatter) FormatHistory(entries []domain.HistoryEntry) string {
	labels := f.Labels()
	if len(entries) == 0 {
		return "📜 " + labels.HistoryEmpty
	}

	rows := make([]historyRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, historyRow{
			Time:   entry.CreatedAt.Format("15:04:05"),
			Action: f.actionName(labels, entry.Action),
			Input:  f.truncatePrompt(entry.Input),
			Output: f.truncatePrompt(entry.Output),
		})
	}

	rendered, err := executeFormatterTemplate("history", historyView{Title: labels.History, Entries: rows})
	if err != nil {
		return f.fallbackHistory(labels, rows)
	}
	return rendered
}

func (f *ResponseFormatter) FormatHelp(commands []HelpEntry) string {
	labels := f.Labels()
	view := helpView{
		Title:      labels.Title,
		Prefix:     f.prefix,
		Commands:   commands,
		PromptHint: labels.PromptLabel,
	}

	rendered, err := executeFormatterTemplate("help", view)
	if err != nil {
		var sb strings.Builder
		sb.WriteString(labels.Title + "\n")
		for _, cmd := range commands {
			sb.WriteString(fmt.Sprintf("%s%s - %s\n", f.prefix, cmd.Usage, cmd.Description))
		}
		return strings.TrimSpace(sb.String())
	}
	return rendered
}

func (f *ResponseFormatter) FormatReset() string {
	return "🔄 " + f.Labels().ResetDone
}

func (f *ResponseFormatter) FormatLocaleChanged() string {
	return "🌐 " + f.Labels().LocaleChanged
}

// FormatLocaleInvalid lists the locales a rejected /lang value could have been.
func (f *ResponseFormatter) FormatLocaleInvalid(value string, supported []domain.Locale) string {
	codes := make([]string, 0, len(supported))
	for _, locale := range supported {
		codes = append(codes, locale.String())
	}
	return fmt.Sprintf("⚠️ %s: %s (%q)", f.Labels().LocaleInvalid, strings.Join(codes, ", "), value)
}

func (f *ResponseFormatter) FormatUnknown(raw string) string {
	return fmt.Sprintf("❓ %s: %s (%shelp)", f.Labels().UnknownCommand, raw, f.prefix)
}

// FormatError renders an inline notice naming the failing stage.
func (f *ResponseFormatter) FormatError(err error) string {
	labels := f.Labels()
	if err == nil {
		return ""
	}

	switch {
	case stderrors.Is(err, errors.ErrSessionBusy):
		return "⏳ " + labels.Busy
	case stderrors.Is(err, errors.ErrNotOptimized):
		return "⚠️ " + labels.NeedOptimize
	}
	if _, ok := errors.AsValidationError(err); ok && stderrors.Is(err, errors.ErrEmptyInput) {
		return "⚠️ " + labels.EmptyPrompt
	}

	stage := errors.StageOf(err)
	if stage == "" {
		return fmt.Sprintf("❌ %s: %v", labels.ErrorPrefix, err)
	}

	stageName := labels.StageName(stage)
	if stage != errors.StageTranslate {
		if _, ok := errors.AsTranslationError(err); ok {
			stageName += " / " + labels.StageName(errors.StageTranslate)
		}
	}
	return fmt.Sprintf("❌ %s [%s]: %v", labels.ErrorPrefix, stageName, err)
}

func (f *ResponseFormatter) actionName(labels Labels, action domain.Action) string {
	switch action {
	case domain.ActionOptimize:
		return labels.Optimize
	case domain.ActionImage:
		return labels.GenerateImage
	case domain.ActionVideo:
		return labels.GenerateVideo
	default:
		return string(action)
	}
}

func (f *ResponseFormatter) fallbackHistory(labels Labels, rows []historyRow) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📜 %s (%d)\n", labels.History, len(rows)))
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s: %s ➜ %s\n", i+1, row.Time, row.Action, row.Input, row.Output))
	}
	return strings.TrimSpace(sb.String())
}

func (f *ResponseFormatter) truncatePrompt(text string) string {
	return util.TruncateString(text, constants.LogLimits.PromptPreview)
}

func formatElapsed(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}

func formatBytes(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
