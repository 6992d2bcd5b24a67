package domain

import "time"

// Phase is the orchestrator state of a single session.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseOptimizing      Phase = "optimizing"
	PhaseOptimized       Phase = "optimized"
	PhaseGeneratingImage Phase = "generating_image"
	PhaseGeneratingVideo Phase = "generating_video"
)

func (p Phase) String() string {
	return string(p)
}

// IsBusy reports whether a remote stage is outstanding in this phase.
func (p Phase) IsBusy() bool {
	switch p {
	case PhaseOptimizing, PhaseGeneratingImage, PhaseGeneratingVideo:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionOptimize Action = "optimize"
	ActionImage    Action = "image"
	ActionVideo    Action = "video"
)

type HistoryEntry struct {
	Action    Action    `json:"action"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionState is everything the pipeline remembers between user actions.
// OptimizedPrompt and EnglishPrompt are always written together.
type SessionState struct {
	ID              string         `json:"id"`
	OptimizedPrompt string         `json:"optimized_prompt"`
	EnglishPrompt   string         `json:"english_prompt"`
	History         []HistoryEntry `json:"history"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func NewSessionState(id string) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:        id,
		History:   []HistoryEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *SessionState) HasPrompt() bool {
	return s != nil && s.OptimizedPrompt != "" && s.EnglishPrompt != ""
}

// Phase derives the resting phase from the stored prompts.
func (s *SessionState) Phase() Phase {
	if s.HasPrompt() {
		return PhaseOptimized
	}
	return PhaseIdle
}

func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	clone := *s
	clone.History = make([]HistoryEntry, len(s.History))
	copy(clone.History, s.History)
	return &clone
}

// AppendHistory adds entry and keeps at most limit newest entries (limit <= 0 keeps all).
func (s *SessionState) AppendHistory(entry HistoryEntry, limit int) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.History = append(s.History, entry)
	if limit > 0 && len(s.History) > limit {
		s.History = append([]HistoryEntry(nil), s.History[len(s.History)-limit:]...)
	}
	s.UpdatedAt = entry.CreatedAt
}
