package prompt

import (
	"strings"
	"testing"
)

func TestRenderOptimizeTemplate(t *testing.T) {
	builder := NewPromptBuilder()

	text, err := builder.Render(TemplateOptimize, OptimizeData{RawPrompt: "花园里的一只猫"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(text, "花园里的一只猫") {
		t.Fatalf("expected raw prompt in rendered text, got %q", text)
	}
	if !strings.Contains(text, "更加详细和专业") {
		t.Fatalf("expected rewrite instruction in rendered text, got %q", text)
	}
	if strings.Contains(text, "风格要求") {
		t.Fatalf("expected style section to be omitted when empty")
	}

	styled, err := builder.Render(TemplateOptimize, OptimizeData{RawPrompt: "cat", Style: "watercolor"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(styled, "watercolor") {
		t.Fatalf("expected style in rendered text, got %q", styled)
	}
}

func TestRenderTranslateTemplate(t *testing.T) {
	builder := NewPromptBuilder()

	text, err := builder.Render(TemplateTranslate, TranslateData{
		Text:           "一辆红色自行车",
		SourceLanguage: "auto",
		TargetLanguage: "en",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"一辆红色自行车", "Target language: en", `"translation"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendered text, got %q", want, text)
		}
	}
}

func TestRenderCachesTemplates(t *testing.T) {
	builder := NewPromptBuilder()
	if _, err := builder.Render(TemplateOptimize, OptimizeData{RawPrompt: "a"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := builder.templates[TemplateOptimize]; !ok {
		t.Fatalf("expected template to be cached after first render")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := NewPromptBuilder().Render(TemplateName("missing.tmpl"), nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
