package prompt

type OptimizeData struct {
	RawPrompt string
	// Style is an optional extra instruction appended to the rewrite request.
	Style string
}

type TranslateData struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
}
