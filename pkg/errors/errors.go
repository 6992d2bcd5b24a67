package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeStudioError  = "STUDIO_ERROR"
	CodeTranslation  = "TRANSLATION_ERROR"
	CodeOptimization = "OPTIMIZATION_ERROR"
	CodeGeneration   = "GENERATION_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
	CodeSession      = "SESSION_ERROR"
)

// Pipeline stages reported by typed errors.
const (
	StageTranslate = "translate"
	StageOptimize  = "optimize"
	StageImage     = "image"
	StageVideo     = "video"
	StageSession   = "session"
)

var (
	ErrEmptyInput          = stderrors.New("empty input")
	ErrNoArtifact          = stderrors.New("provider returned no artifact")
	ErrSessionBusy         = stderrors.New("another action is already running for this session")
	ErrNotOptimized        = stderrors.New("no optimized prompt in session")
	ErrUnsupportedLanguage = stderrors.New("unsupported source language")
)

type StudioError struct {
	Message string
	Code    string
	Stage   string
	Context map[string]any
	Cause   error
}

func (e *StudioError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StudioError) Unwrap() error {
	return e.Cause
}

func NewStudioError(message, code, stage string, context map[string]any) *StudioError {
	return &StudioError{
		Message: message,
		Code:    code,
		Stage:   stage,
		Context: context,
	}
}

func (e *StudioError) WithCause(cause error) *StudioError {
	e.Cause = cause
	return e
}

type TranslationError struct {
	*StudioError
}

func NewTranslationError(message string, cause error) *TranslationError {
	return &TranslationError{
		StudioError: &StudioError{
			Message: message,
			Code:    CodeTranslation,
			Stage:   StageTranslate,
			Cause:   cause,
		},
	}
}

type OptimizationError struct {
	*StudioError
}

func NewOptimizationError(message string, cause error) *OptimizationError {
	return &OptimizationError{
		StudioError: &StudioError{
			Message: message,
			Code:    CodeOptimization,
			Stage:   StageOptimize,
			Cause:   cause,
		},
	}
}

// GenerationError covers both image and video synthesis; Kind is the stage.
type GenerationError struct {
	*StudioError
	Kind string
}

func NewGenerationError(kind, message string, cause error) *GenerationError {
	return &GenerationError{
		StudioError: &StudioError{
			Message: message,
			Code:    CodeGeneration,
			Stage:   kind,
			Context: map[string]any{"kind": kind},
			Cause:   cause,
		},
		Kind: kind,
	}
}

type ValidationError struct {
	*StudioError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		StudioError: &StudioError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type SessionError struct {
	*StudioError
	SessionID string
}

func NewSessionError(message, sessionID string, cause error) *SessionError {
	return &SessionError{
		StudioError: &StudioError{
			Message: message,
			Code:    CodeSession,
			Stage:   StageSession,
			Context: map[string]any{"session_id": sessionID},
			Cause:   cause,
		},
		SessionID: sessionID,
	}
}

func AsTranslationError(err error) (*TranslationError, bool) {
	var target *TranslationError
	ok := stderrors.As(err, &target)
	return target, ok
}

func AsOptimizationError(err error) (*OptimizationError, bool) {
	var target *OptimizationError
	ok := stderrors.As(err, &target)
	return target, ok
}

func AsGenerationError(err error) (*GenerationError, bool) {
	var target *GenerationError
	ok := stderrors.As(err, &target)
	return target, ok
}

func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	ok := stderrors.As(err, &target)
	return target, ok
}

// StageOf returns the outermost stage recorded in err's chain, or "" when the
// error carries none.
func StageOf(err error) string {
	for err != nil {
		switch e := err.(type) {
		case *TranslationError:
			return e.Stage
		case *OptimizationError:
			return e.Stage
		case *GenerationError:
			return e.Stage
		case *SessionError:
			return e.Stage
		case *StudioError:
			if e.Stage != "" {
				return e.Stage
			}
		}
		err = stderrors.Unwrap(err)
	}
	return ""
}
