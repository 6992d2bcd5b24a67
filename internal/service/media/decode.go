package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// registered decoders for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/kapu/ai-creative-studio-go/pkg/errors"
)

// firstArtifact returns the decoded bytes of the first artifact with content.
func firstArtifact(resp *ArtifactResponse) ([]byte, error) {
	if resp == nil || len(resp.Artifacts) == 0 {
		if resp != nil && len(resp.FilteredReasons) > 0 {
			return nil, fmt.Errorf("%w (filtered: %s)", errors.ErrNoArtifact, strings.Join(resp.FilteredReasons, "; "))
		}
		return nil, errors.ErrNoArtifact
	}

	for _, artifact := range resp.Artifacts {
		if len(artifact.Data) > 0 {
			return artifact.Data, nil
		}
		if artifact.Base64 == "" {
			continue
		}
		data, err := decodeBase64(artifact.Base64)
		if err != nil {
			return nil, fmt.Errorf("malformed artifact data: %w", err)
		}
		if len(data) > 0 {
			return data, nil
		}
	}

	return nil, errors.ErrNoArtifact
}

func decodeBase64(value string) ([]byte, error) {
	cleaned := strings.TrimSpace(value)
	// data URLs: data:image/png;base64,....
	if strings.HasPrefix(cleaned, "data:") {
		if idx := strings.Index(cleaned, ","); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(cleaned); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// detectMIME sniffs the container format from the content itself.
func detectMIME(data []byte) *mimetype.MIME {
	return mimetype.Detect(data)
}

func isVideoMIME(mime *mimetype.MIME) bool {
	return strings.HasPrefix(mime.String(), "video/")
}

func decodeImage(data []byte) (image.Image, string, error) {
	mime := detectMIME(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, mime.String(), fmt.Errorf("artifact is %s, not an image", mime.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mime.String(), fmt.Errorf("decode %s: %w", mime.String(), err)
	}
	return img, mime.String(), nil
}
