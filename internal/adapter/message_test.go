package adapter

import (
	"testing"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

func TestParseMessagePlainTextIsOptimize(t *testing.T) {
	ma := NewMessageAdapter("/")

	cmd := ma.ParseMessage("  花园里的一只猫\x07 ")
	if cmd.Type != domain.CommandOptimize {
		t.Fatalf("expected optimize, got %s", cmd.Type)
	}
	if cmd.Params["prompt"] != "花园里的一只猫" {
		t.Fatalf("expected sanitized prompt, got %q", cmd.Params["prompt"])
	}
}

func TestParseMessageCommands(t *testing.T) {
	ma := NewMessageAdapter("/")

	tests := []struct {
		line string
		want domain.CommandType
	}{
		{"/image", domain.CommandImage},
		{"/图片", domain.CommandImage},
		{"/VIDEO", domain.CommandVideo},
		{"/history", domain.CommandHistory},
		{"/reset", domain.CommandReset},
		{"/lang en", domain.CommandLang},
		{"/help", domain.CommandHelp},
		{"/optimize a cat", domain.CommandOptimize},
		{"/dance", domain.CommandUnknown},
		{"/", domain.CommandUnknown},
		{"", domain.CommandUnknown},
	}

	for _, tt := range tests {
		if got := ma.ParseMessage(tt.line).Type; got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.line, tt.want, got)
		}
	}
}

func TestParseMessageVideoArgs(t *testing.T) {
	ma := NewMessageAdapter("/")

	cmd := ma.ParseMessage("/video")
	if cmd.Params["duration"] != 5 || cmd.Params["fps"] != 24 {
		t.Fatalf("expected defaults, got %+v", cmd.Params)
	}

	cmd = ma.ParseMessage("/video 8 30")
	if cmd.Params["duration"] != 8 || cmd.Params["fps"] != 30 {
		t.Fatalf("expected parsed args, got %+v", cmd.Params)
	}

	cmd = ma.ParseMessage("/video long")
	if cmd.Params["duration"] != -1 {
		t.Fatalf("expected invalid duration marker, got %+v", cmd.Params)
	}
}

func TestParseMessageLangArg(t *testing.T) {
	cmd := NewMessageAdapter("").ParseMessage("/lang ja")
	if cmd.Params["locale"] != "ja" {
		t.Fatalf("expected locale param, got %+v", cmd.Params)
	}
}
