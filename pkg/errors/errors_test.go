package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestTypedErrorsWrapSentinels(t *testing.T) {
	err := NewGenerationError(StageImage, "image response carried no usable artifact", ErrNoArtifact)

	if !stderrors.Is(err, ErrNoArtifact) {
		t.Fatalf("expected errors.Is to reach ErrNoArtifact")
	}
	gerr, ok := AsGenerationError(err)
	if !ok || gerr.Kind != StageImage || gerr.Code != CodeGeneration {
		t.Fatalf("unexpected generation error %+v", gerr)
	}
	if err.Error() != "image response carried no usable artifact: provider returned no artifact" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestStageOfReturnsOutermostStage(t *testing.T) {
	inner := NewTranslationError("translation service failed", stderrors.New("timeout"))
	outer := NewGenerationError(StageVideo, "prompt translation failed", inner)

	if got := StageOf(outer); got != StageVideo {
		t.Fatalf("expected video stage, got %q", got)
	}
	if got := StageOf(fmt.Errorf("wrapped: %w", inner)); got != StageTranslate {
		t.Fatalf("expected translate stage through fmt wrapping, got %q", got)
	}
	if _, ok := AsTranslationError(outer); !ok {
		t.Fatalf("expected translation error in chain")
	}
	if StageOf(stderrors.New("plain")) != "" || StageOf(nil) != "" {
		t.Fatalf("expected no stage for untyped errors")
	}
}

func TestValidationAndSessionErrors(t *testing.T) {
	verr := NewValidationError("duration out of range", "duration_seconds", 11)
	if verr.Field != "duration_seconds" || verr.Value != 11 || verr.Code != CodeValidation {
		t.Fatalf("unexpected validation error %+v", verr)
	}
	if StageOf(verr) != "" {
		t.Fatalf("expected validation errors to carry no stage")
	}

	serr := NewSessionError("session is busy", "s1", ErrSessionBusy)
	if !stderrors.Is(serr, ErrSessionBusy) || serr.SessionID != "s1" || StageOf(serr) != StageSession {
		t.Fatalf("unexpected session error %+v", serr)
	}
}

func TestOptimizationErrorWithoutCause(t *testing.T) {
	err := NewOptimizationError("model returned an empty completion", nil)
	if err.Error() != "model returned an empty completion" || err.Unwrap() != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok := AsOptimizationError(err); !ok {
		t.Fatalf("expected AsOptimizationError to match")
	}
}
