package domain

import (
	"testing"
	"time"
)

func TestSessionStatePhase(t *testing.T) {
	state := NewSessionState("s1")
	if state.Phase() != PhaseIdle {
		t.Fatalf("expected idle phase for fresh session, got %s", state.Phase())
	}

	state.OptimizedPrompt = "a cat"
	if state.Phase() != PhaseIdle {
		t.Fatalf("expected idle phase while english prompt is missing, got %s", state.Phase())
	}

	state.EnglishPrompt = "a cat"
	if state.Phase() != PhaseOptimized {
		t.Fatalf("expected optimized phase, got %s", state.Phase())
	}
}

func TestSessionStateAppendHistoryTrims(t *testing.T) {
	state := NewSessionState("s1")
	for i := 0; i < 5; i++ {
		state.AppendHistory(HistoryEntry{Action: ActionImage, Input: string(rune('a' + i))}, 3)
	}

	if len(state.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(state.History))
	}
	if state.History[0].Input != "c" || state.History[2].Input != "e" {
		t.Fatalf("expected newest entries to be kept, got %+v", state.History)
	}
	if state.History[2].CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be stamped")
	}
}

func TestSessionStateCloneIsDeep(t *testing.T) {
	state := NewSessionState("s1")
	state.AppendHistory(HistoryEntry{Action: ActionOptimize, CreatedAt: time.Now()}, 0)

	clone := state.Clone()
	clone.History[0].Input = "mutated"
	clone.OptimizedPrompt = "changed"

	if state.History[0].Input == "mutated" || state.OptimizedPrompt == "changed" {
		t.Fatalf("expected clone mutations not to leak into original")
	}
}

func TestLookupLocaleRejectsUnknown(t *testing.T) {
	if _, ok := LookupLocale("xx"); ok {
		t.Fatalf("expected unknown locale to be rejected")
	}
	if locale, ok := LookupLocale(" KO "); !ok || locale != LocaleKorean {
		t.Fatalf("expected ko, got %s (%v)", locale, ok)
	}
	if locale, ok := LookupLocale("zh"); !ok || locale != LocaleChinese {
		t.Fatalf("expected zh, got %s (%v)", locale, ok)
	}
}

func TestParseLocale(t *testing.T) {
	cases := map[string]Locale{
		"en":      LocaleEnglish,
		"English": LocaleEnglish,
		"日本語":     LocaleJapanese,
		"ko":      LocaleKorean,
		"中文":      LocaleChinese,
		"klingon": LocaleChinese,
	}
	for input, want := range cases {
		if got := ParseLocale(input); got != want {
			t.Fatalf("ParseLocale(%q) = %s, want %s", input, got, want)
		}
	}
}
