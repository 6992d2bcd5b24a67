package media

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kapu/ai-creative-studio-go/internal/domain"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeTranslator struct {
	result string
	err    error
	calls  []string
}

func (f *fakeTranslator) ToEnglish(_ context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return "", f.err
	}
	if f.result != "" {
		return f.result, nil
	}
	return text, nil
}

type fakeProvider struct {
	image      *ArtifactResponse
	video      *ArtifactResponse
	err        error
	imageCalls []ImageRequest
	videoCalls []VideoRequest
}

func (f *fakeProvider) Name() string { return "Fake" }

func (f *fakeProvider) GenerateImage(_ context.Context, req ImageRequest) (*ArtifactResponse, error) {
	f.imageCalls = append(f.imageCalls, req)
	return f.image, f.err
}

func (f *fakeProvider) GenerateVideo(_ context.Context, req VideoRequest) (*ArtifactResponse, error) {
	f.videoCalls = append(f.videoCalls, req)
	return f.video, f.err
}

type failingSaver struct{}

func (failingSaver) Save(string, string, []byte) (string, int64, error) {
	return "", 0, stderrors.New("disk full")
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// mp4Bytes is the smallest ftyp box a container sniffer recognises as MP4.
func mp4Bytes() []byte {
	return append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypisom\x00\x00\x02\x00isomiso2mdat")...)
}

func TestImageGenerateScenario(t *testing.T) {
	translator := &fakeTranslator{result: "a red bicycle on a beach at sunset"}
	provider := &fakeProvider{image: &ArtifactResponse{Artifacts: []Artifact{
		{Base64: base64.StdEncoding.EncodeToString(pngBytes(t, 1024, 1024))},
	}}}
	svc := NewImageService(translator, provider, DefaultImageParams(), zap.NewNop())

	img, err := svc.Generate(context.Background(), "a red bicycle on a beach at sunset")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if img.Width != 1024 || img.Height != 1024 || img.MIMEType != "image/png" {
		t.Fatalf("unexpected image: %dx%d %s", img.Width, img.Height, img.MIMEType)
	}
	if len(provider.imageCalls) != 1 {
		t.Fatalf("expected one provider call, got %d", len(provider.imageCalls))
	}
	req := provider.imageCalls[0]
	if req.GuidanceScale != 7 || req.Steps != 50 || req.Width != 1024 || req.Height != 1024 {
		t.Fatalf("expected reference parameters, got %+v", req)
	}
	if req.Prompt != "a red bicycle on a beach at sunset" {
		t.Fatalf("expected translated prompt to be sent, got %q", req.Prompt)
	}
}

func TestImageGenerateTranslationFailureStopsPipeline(t *testing.T) {
	translator := &fakeTranslator{err: errors.NewTranslationError("translation service failed", stderrors.New("down"))}
	provider := &fakeProvider{}
	svc := NewImageService(translator, provider, DefaultImageParams(), zap.NewNop())

	_, err := svc.Generate(context.Background(), "一辆红色自行车")
	gerr, ok := errors.AsGenerationError(err)
	if !ok || gerr.Kind != errors.StageImage {
		t.Fatalf("expected image GenerationError, got %v", err)
	}
	if _, ok := errors.AsTranslationError(err); !ok {
		t.Fatalf("expected TranslationError as cause, got %v", err)
	}
	if len(provider.imageCalls) != 0 {
		t.Fatalf("expected no provider call after translation failure")
	}
}

func TestImageGenerateFailures(t *testing.T) {
	cases := []struct {
		name     string
		provider *fakeProvider
		want     error
	}{
		{name: "provider error", provider: &fakeProvider{err: stderrors.New("500 internal")}},
		{name: "no artifacts", provider: &fakeProvider{image: &ArtifactResponse{}}, want: errors.ErrNoArtifact},
		{name: "filtered", provider: &fakeProvider{image: &ArtifactResponse{FilteredReasons: []string{"safety"}}}, want: errors.ErrNoArtifact},
		{name: "malformed base64", provider: &fakeProvider{image: &ArtifactResponse{Artifacts: []Artifact{{Base64: "%%%"}}}}},
		{name: "not an image", provider: &fakeProvider{image: &ArtifactResponse{Artifacts: []Artifact{{Data: []byte("hello world")}}}}},
		{name: "truncated png", provider: &fakeProvider{image: &ArtifactResponse{Artifacts: []Artifact{{Data: pngBytes(t, 8, 8)[:40]}}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewImageService(&fakeTranslator{}, tc.provider, DefaultImageParams(), zap.NewNop())
			img, err := svc.Generate(context.Background(), "cat")
			if img != nil {
				t.Fatalf("expected no partial image")
			}
			if _, ok := errors.AsGenerationError(err); !ok {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			if tc.want != nil && !stderrors.Is(err, tc.want) {
				t.Fatalf("expected %v in chain, got %v", tc.want, err)
			}
		})
	}
}

func TestImageGenerateRejectsBadParams(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewImageService(&fakeTranslator{}, provider, DefaultImageParams(), zap.NewNop())

	params := DefaultImageParams()
	params.Steps = 0
	_, err := svc.GenerateWithParams(context.Background(), "cat", params)
	if _, ok := errors.AsValidationError(err); !ok {
		t.Fatalf("expected ValidationError in chain, got %v", err)
	}
	if len(provider.imageCalls) != 0 {
		t.Fatalf("expected no provider call")
	}
}

func TestVideoGenerateScenario(t *testing.T) {
	dir := t.TempDir()
	translator := &fakeTranslator{result: "a cat in a garden"}
	provider := &fakeProvider{video: &ArtifactResponse{Artifacts: []Artifact{
		{Base64: base64.StdEncoding.EncodeToString(mp4Bytes())},
	}}}
	svc := NewVideoService(translator, provider, NewFileStore(dir), 1024, 1024, zap.NewNop())

	handle, err := svc.Generate(context.Background(), "花园里的猫", 5, 24, "session-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if handle.MIMEType != "video/mp4" || !strings.HasSuffix(handle.Path, ".mp4") {
		t.Fatalf("unexpected handle: %+v", handle)
	}
	if !strings.HasPrefix(filepath.Base(handle.Path), "session-1-") {
		t.Fatalf("expected request id in file name, got %s", handle.Path)
	}
	data, err := os.ReadFile(handle.Path)
	if err != nil || !bytes.Equal(data, mp4Bytes()) {
		t.Fatalf("expected video bytes on disk, err=%v", err)
	}
	req := provider.videoCalls[0]
	if req.DurationSeconds != 5 || req.FPS != 24 || req.Prompt != "a cat in a garden" {
		t.Fatalf("unexpected video request: %+v", req)
	}
}

func TestVideoHandleReportsAppliedSettings(t *testing.T) {
	provider := &fakeProvider{video: &ArtifactResponse{
		Artifacts:       []Artifact{{Data: mp4Bytes()}},
		DurationSeconds: 6,
		FPSIgnored:      true,
	}}
	svc := NewVideoService(&fakeTranslator{}, provider, NewFileStore(t.TempDir()), 0, 0, zap.NewNop())

	handle, err := svc.Generate(context.Background(), "cat", 5, 30, "r")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if handle.DurationSeconds != 6 || handle.FPS != 0 {
		t.Fatalf("expected applied duration 6 and model-chosen fps, got %+v", handle)
	}
}

func TestVideoGenerateSameRequestDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	provider := &fakeProvider{video: &ArtifactResponse{Artifacts: []Artifact{{Data: mp4Bytes()}}}}
	svc := NewVideoService(&fakeTranslator{}, provider, NewFileStore(dir), 0, 0, zap.NewNop())

	first, err := svc.Generate(context.Background(), "cat", 5, 24, "same")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Generate(context.Background(), "cat", 5, 24, "same")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Path == second.Path {
		t.Fatalf("expected distinct output paths, got %s twice", first.Path)
	}
}

func TestVideoGenerateRejectsOutOfRangeBeforeRemoteCall(t *testing.T) {
	cases := []struct{ duration, fps int }{
		{0, 24}, {11, 24}, {5, 11}, {5, 61}, {-1, -1},
	}
	for _, tc := range cases {
		translator := &fakeTranslator{}
		provider := &fakeProvider{}
		svc := NewVideoService(translator, provider, NewFileStore(t.TempDir()), 0, 0, zap.NewNop())

		_, err := svc.Generate(context.Background(), "cat", tc.duration, tc.fps, "")
		if _, ok := errors.AsValidationError(err); !ok {
			t.Fatalf("duration=%d fps=%d: expected ValidationError, got %v", tc.duration, tc.fps, err)
		}
		if len(translator.calls) != 0 || len(provider.videoCalls) != 0 {
			t.Fatalf("duration=%d fps=%d: expected no remote calls", tc.duration, tc.fps)
		}
	}

	for _, tc := range []struct{ duration, fps int }{{1, 12}, {10, 60}} {
		if err := ValidateVideoParams(tc.duration, tc.fps); err != nil {
			t.Fatalf("expected bounds %d/%d to be accepted, got %v", tc.duration, tc.fps, err)
		}
	}
}

func TestVideoGenerateFailures(t *testing.T) {
	cases := []struct {
		name  string
		resp  *ArtifactResponse
		err   error
		store VideoSaver
	}{
		{name: "provider error", err: stderrors.New("deadline exceeded")},
		{name: "no artifacts", resp: &ArtifactResponse{}},
		{name: "not a video", resp: &ArtifactResponse{Artifacts: []Artifact{{Data: []byte("plain text")}}}},
		{name: "write failure", resp: &ArtifactResponse{Artifacts: []Artifact{{Data: mp4Bytes()}}}, store: failingSaver{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.store
			if store == nil {
				store = NewFileStore(t.TempDir())
			}
			svc := NewVideoService(&fakeTranslator{}, &fakeProvider{video: tc.resp, err: tc.err}, store, 0, 0, zap.NewNop())
			handle, err := svc.Generate(context.Background(), "cat", 5, 24, "r")
			if handle != nil {
				t.Fatalf("expected no handle on failure")
			}
			gerr, ok := errors.AsGenerationError(err)
			if !ok || gerr.Kind != errors.StageVideo {
				t.Fatalf("expected video GenerationError, got %v", err)
			}
		})
	}
}

func TestNearestAspectRatio(t *testing.T) {
	cases := []struct {
		w, h    int
		options []string
		want    string
	}{
		{1024, 1024, imageAspectRatios, "1:1"},
		{1920, 1080, imageAspectRatios, "16:9"},
		{768, 1024, imageAspectRatios, "3:4"},
		{720, 1280, videoAspectRatios, "9:16"},
		{0, 0, videoAspectRatios, "16:9"},
	}
	for _, tc := range cases {
		if got := nearestAspectRatio(tc.w, tc.h, tc.options); got != tc.want {
			t.Fatalf("nearestAspectRatio(%d,%d) = %s, want %s", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestDecodeBase64DataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("abc"))
	data, err := decodeBase64("data:image/png;base64," + payload)
	if err != nil || string(data) != "abc" {
		t.Fatalf("expected data URL to decode, got %q err=%v", data, err)
	}
	raw, err := decodeBase64(strings.TrimRight(payload, "="))
	if err != nil || string(raw) != "abc" {
		t.Fatalf("expected unpadded base64 to decode, got %q err=%v", raw, err)
	}
}

func TestFileStoreSaveImageWritesPNG(t *testing.T) {
	store := NewFileStore(t.TempDir())
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))

	path, err := store.SaveImage("s1", &domain.GeneratedImage{Image: img, MIMEType: "image/jpeg"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Fatalf("expected png extension, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected decodable png, got %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", decoded.Bounds())
	}

	if _, err := store.SaveImage("s1", nil); err == nil {
		t.Fatalf("expected nil image to fail")
	}
}
