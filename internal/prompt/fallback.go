package prompt

import "fmt"

func FallbackOptimize(data OptimizeData) string {
	text := fmt.Sprintf("请优化以下图片生成提示词，使其更加详细和专业：%s", data.RawPrompt)
	if data.Style != "" {
		text += fmt.Sprintf("\n\n风格要求：%s", data.Style)
	}
	return text + "\n\n只输出优化后的提示词本身，不要添加解释、标题或引号。"
}

func FallbackTranslate(data TranslateData) string {
	return fmt.Sprintf(`Translate the following text from %s to %s. Keep every visual detail.

<<<TEXT
%s
TEXT>>>

Respond with JSON only:
{"detected_language": "<ISO 639-1 code>", "supported": true|false, "translation": "<translated text>"}`,
		data.SourceLanguage, data.TargetLanguage, data.Text)
}
