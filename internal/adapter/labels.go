package adapter

import "github.com/kapu/ai-creative-studio-go/internal/domain"

// Labels is the user-facing text for one locale.
type Labels struct {
	Title           string
	PromptLabel     string
	Optimize        string
	GenerateImage   string
	GenerateVideo   string
	Loading         string
	VideoDuration   string
	VideoFPS        string
	OptimizedPrompt string
	EnglishPrompt   string
	OptimizeSuccess string
	EmptyPrompt     string
	NeedOptimize    string
	Busy            string
	GeneratedImage  string
	GeneratedVideo  string
	VideoOptions    string
	History         string
	HistoryEmpty    string
	ResetDone       string
	LocaleChanged   string
	LocaleInvalid   string
	ModelDefault    string
	UnknownCommand  string
	ErrorPrefix     string
	Stages          map[string]string
}

var labelTable = map[domain.Locale]Labels{
	domain.LocaleChinese: {
		Title:           "🎨 AI 创作助手",
		PromptLabel:     "请输入创作描述",
		Optimize:        "优化提示词",
		GenerateImage:   "生成图片",
		GenerateVideo:   "生成视频",
		Loading:         "正在生成，请稍候...",
		VideoDuration:   "视频时长（秒）",
		VideoFPS:        "视频帧率",
		OptimizedPrompt: "优化后的提示词",
		EnglishPrompt:   "英文提示词",
		OptimizeSuccess: "提示词已优化并翻译！",
		EmptyPrompt:     "请输入创作描述",
		NeedOptimize:    "请先优化提示词",
		Busy:            "上一个操作仍在进行中，请稍候",
		GeneratedImage:  "生成的图片",
		GeneratedVideo:  "生成的视频",
		VideoOptions:    "视频生成选项",
		History:         "对话历史",
		HistoryEmpty:    "暂无历史记录",
		ResetDone:       "会话已重置",
		LocaleChanged:   "界面语言已切换",
		LocaleInvalid:   "不支持的语言，可选",
		ModelDefault:    "模型默认",
		UnknownCommand:  "未知命令",
		ErrorPrefix:     "出错了",
		Stages: map[string]string{
			"translate": "翻译",
			"optimize":  "优化提示词",
			"image":     "生成图片",
			"video":     "生成视频",
			"session":   "会话",
		},
	},
	domain.LocaleEnglish: {
		Title:           "🎨 AI Creative Studio",
		PromptLabel:     "Enter description",
		Optimize:        "Optimize prompt",
		GenerateImage:   "Generate image",
		GenerateVideo:   "Generate video",
		Loading:         "Generating, please wait...",
		VideoDuration:   "Video duration (seconds)",
		VideoFPS:        "Video FPS",
		OptimizedPrompt: "Optimized prompt",
		EnglishPrompt:   "English prompt",
		OptimizeSuccess: "Prompt optimized and translated!",
		EmptyPrompt:     "Please enter a description",
		NeedOptimize:    "Optimize a prompt first",
		Busy:            "The previous action is still running, please wait",
		GeneratedImage:  "Generated image",
		GeneratedVideo:  "Generated video",
		VideoOptions:    "Video options",
		History:         "History",
		HistoryEmpty:    "No history yet",
		ResetDone:       "Session reset",
		LocaleChanged:   "Interface language changed",
		LocaleInvalid:   "Unsupported language, choose one of",
		ModelDefault:    "model default",
		UnknownCommand:  "Unknown command",
		ErrorPrefix:     "Error",
		Stages: map[string]string{
			"translate": "translation",
			"optimize":  "prompt optimization",
			"image":     "image generation",
			"video":     "video generation",
			"session":   "session",
		},
	},
	domain.LocaleJapanese: {
		Title:           "🎨 AI クリエイティブアシスタント",
		PromptLabel:     "説明を入力してください",
		Optimize:        "プロンプトを最適化",
		GenerateImage:   "画像を生成",
		GenerateVideo:   "動画を生成",
		Loading:         "生成中です。お待ちください...",
		VideoDuration:   "動画の長さ（秒）",
		VideoFPS:        "動画のフレームレート",
		OptimizedPrompt: "最適化されたプロンプト",
		EnglishPrompt:   "英語のプロンプト",
		OptimizeSuccess: "プロンプトを最適化して翻訳しました！",
		EmptyPrompt:     "説明を入力してください",
		NeedOptimize:    "先にプロンプトを最適化してください",
		Busy:            "前の操作がまだ実行中です。お待ちください",
		GeneratedImage:  "生成された画像",
		GeneratedVideo:  "生成された動画",
		VideoOptions:    "動画生成オプション",
		History:         "履歴",
		HistoryEmpty:    "履歴はまだありません",
		ResetDone:       "セッションをリセットしました",
		LocaleChanged:   "表示言語を切り替えました",
		LocaleInvalid:   "未対応の言語です。選択肢",
		ModelDefault:    "モデル既定",
		UnknownCommand:  "不明なコマンド",
		ErrorPrefix:     "エラー",
		Stages: map[string]string{
			"translate": "翻訳",
			"optimize":  "プロンプト最適化",
			"image":     "画像生成",
			"video":     "動画生成",
			"session":   "セッション",
		},
	},
	domain.LocaleKorean: {
		Title:           "🎨 AI 크리에이티브 어시스턴트",
		PromptLabel:     "설명을 입력하세요",
		Optimize:        "프롬프트 최적화",
		GenerateImage:   "이미지 생성",
		GenerateVideo:   "비디오 생성",
		Loading:         "생성 중입니다. 잠시만 기다려주세요...",
		VideoDuration:   "비디오 길이(초)",
		VideoFPS:        "비디오 프레임 레이트",
		OptimizedPrompt: "최적화된 프롬프트",
		EnglishPrompt:   "영어 프롬프트",
		OptimizeSuccess: "프롬프트를 최적화하고 번역했습니다!",
		EmptyPrompt:     "설명을 입력하세요",
		NeedOptimize:    "먼저 프롬프트를 최적화하세요",
		Busy:            "이전 작업이 아직 진행 중입니다. 잠시만 기다려주세요",
		GeneratedImage:  "생성된 이미지",
		GeneratedVideo:  "생성된 비디오",
		VideoOptions:    "비디오 생성 옵션",
		History:         "대화 기록",
		HistoryEmpty:    "기록이 없습니다",
		ResetDone:       "세션이 초기화되었습니다",
		LocaleChanged:   "인터페이스 언어가 변경되었습니다",
		LocaleInvalid:   "지원하지 않는 언어입니다. 선택 가능",
		ModelDefault:    "모델 기본값",
		UnknownCommand:  "알 수 없는 명령어",
		ErrorPrefix:     "오류",
		Stages: map[string]string{
			"translate": "번역",
			"optimize":  "프롬프트 최적화",
			"image":     "이미지 생성",
			"video":     "비디오 생성",
			"session":   "세션",
		},
	},
}

// LabelsFor returns the label set for locale, defaulting to Chinese.
func LabelsFor(locale domain.Locale) Labels {
	if labels, ok := labelTable[locale]; ok {
		return labels
	}
	return labelTable[domain.LocaleChinese]
}

// StageName returns the localized name of a pipeline stage, or stage itself.
func (l Labels) StageName(stage string) string {
	if name, ok := l.Stages[stage]; ok {
		return name
	}
	return stage
}
