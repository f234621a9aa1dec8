// internal/quota/modality.go
package quota

import (
	"fmt"

	"assistant-backend/internal/models"
)

// Modality is one of the four meterable content types.
type Modality string

const (
	ModalityVideo    Modality = "video"
	ModalityAudio    Modality = "audio"
	ModalityDocument Modality = "document"
	ModalityImage    Modality = "image"
)

// Modalities lists every known modality in a stable order.
var Modalities = []Modality{ModalityVideo, ModalityAudio, ModalityDocument, ModalityImage}

// ParseModality maps a wire string to a Modality.
func ParseModality(s string) (Modality, error) {
	switch Modality(s) {
	case ModalityVideo, ModalityAudio, ModalityDocument, ModalityImage:
		return Modality(s), nil
	}
	return "", fmt.Errorf("unknown modality %q", s)
}

// Enabled returns the feature flag for the modality. An explicit mapping:
// flags are never looked up by constructed field name.
func (m Modality) Enabled(settings models.UserSettings) bool {
	switch m {
	case ModalityVideo:
		return settings.CanUseVideo
	case ModalityAudio:
		return settings.CanUseAudio
	case ModalityDocument:
		return settings.CanUseDocument
	case ModalityImage:
		return settings.CanUseImage
	}
	return false
}

func (m Modality) String() string {
	return string(m)
}
