package task

import "fmt"

// Kind discriminates which correction workflow a request invokes.
type Kind string

const (
	KindFreeEssay    Kind = "free-essay"
	KindTranslation  Kind = "translation"
	KindDiagramEssay Kind = "diagram-essay"
	KindDiagramOCR   Kind = "diagram-ocr"
)

// ParseKind maps the wire value to a Kind. Unknown values are a hard
// validation error; silently defaulting them would mask caller bugs.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindFreeEssay, KindTranslation, KindDiagramEssay, KindDiagramOCR:
		return Kind(s), nil
	}
	return "", &ValidationError{
		Code:    ErrUnknownTaskKind,
		Message: fmt.Sprintf("unsupported taskKind: %q", s),
	}
}

// Payload is the inbound request body for every kind. Which fields are
// required depends on the Kind; Normalize enforces that.
type Payload struct {
	TaskKind          string   `json:"taskKind"`
	Question          string   `json:"question,omitempty"`
	Answer            string   `json:"answer,omitempty"`
	JapaneseText      string   `json:"japaneseText,omitempty"`
	ImageData         string   `json:"imageData,omitempty"`
	CustomInstruction string   `json:"customInstruction,omitempty"`
	LevelIDs          []string `json:"levelIds,omitempty"`
	Dialect           string   `json:"dialect,omitempty"`

	// Stream selects the legacy {"correction": ...} envelope when false.
	// Ignored for diagram-ocr, which never streams.
	Stream *bool `json:"stream,omitempty"`
}

// ContentBlock is one normalized unit of the user turn: text, or an inline
// base64 image. Image blocks always precede the text block in a sequence.
type ContentBlock struct {
	Type      string // "text" | "image"
	Text      string
	MediaType string
	Data      string // base64, no data: prefix
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

func ImageBlock(mediaType, b64 string) ContentBlock {
	return ContentBlock{Type: "image", MediaType: mediaType, Data: b64}
}
