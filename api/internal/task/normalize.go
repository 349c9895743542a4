package task

import (
	"fmt"
	"unicode/utf8"

	"essay-proxy/api/internal/util"
)

// Media types the upstream vision API accepts for inline images.
var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

const ocrInstruction = "この画像の文章を書き起こしてください。"

// Normalize validates p for the given kind and shapes it into the ordered
// content-block sequence for the upstream user turn. Pure: no I/O, no
// mutation of p. maxChars bounds every free-text field, counted in runes.
func Normalize(kind Kind, p Payload, maxChars int) ([]ContentBlock, error) {
	if err := checkLengths(p, maxChars); err != nil {
		return nil, err
	}

	switch kind {
	case KindFreeEssay:
		if p.Answer == "" {
			return nil, missing("answer is required")
		}
		return []ContentBlock{TextBlock(essayMessage(p.Question, p.Answer))}, nil

	case KindTranslation:
		if p.JapaneseText == "" || p.Answer == "" {
			return nil, missing("japaneseText and answer are required")
		}
		msg := "【日本語テキスト】\n" + p.JapaneseText + "\n\n【あなたの英訳】\n" + p.Answer
		return []ContentBlock{TextBlock(msg)}, nil

	case KindDiagramEssay:
		if p.Answer == "" {
			return nil, missing("answer is required")
		}
		blocks := []ContentBlock{}
		if p.ImageData != "" {
			img, err := decodeImage(p.ImageData)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, img)
		}
		return append(blocks, TextBlock(essayMessage(p.Question, p.Answer))), nil

	case KindDiagramOCR:
		if p.ImageData == "" {
			return nil, missing("imageData is required")
		}
		img, err := decodeImage(p.ImageData)
		if err != nil {
			return nil, err
		}
		return []ContentBlock{img, TextBlock(ocrInstruction)}, nil
	}

	return nil, &ValidationError{
		Code:    ErrUnknownTaskKind,
		Message: fmt.Sprintf("unsupported taskKind: %q", string(kind)),
	}
}

// essayMessage builds the user turn text for the essay kinds. The question
// label is omitted entirely when there is no question, not left empty.
func essayMessage(question, answer string) string {
	if question != "" {
		return "【問題文】\n" + question + "\n\n【あなたの解答】\n" + answer
	}
	return "【あなたの解答】\n" + answer
}

func checkLengths(p Payload, maxChars int) error {
	fields := []struct {
		name, value string
	}{
		{"answer", p.Answer},
		{"question", p.Question},
		{"japaneseText", p.JapaneseText},
		{"customInstruction", p.CustomInstruction},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > maxChars {
			return &ValidationError{
				Code:    ErrFieldTooLong,
				Message: fmt.Sprintf("%s exceeds the maximum length of %d characters", f.name, maxChars),
			}
		}
	}
	return nil
}

// decodeImage turns a data-URI string into an image block. The media type is
// checked against the allow-list before the payload, so an unsupported
// format reports as such even when the base64 is junk.
func decodeImage(dataURI string) (ContentBlock, error) {
	mediaType, b64, err := util.DecodeDataURL(dataURI)
	if mediaType == "" {
		return ContentBlock{}, &ValidationError{
			Code:    ErrUnsupportedMediaType,
			Message: "imageData must be a base64 data URI",
		}
	}
	if !supportedImageTypes[mediaType] {
		return ContentBlock{}, &ValidationError{
			Code:    ErrUnsupportedMediaType,
			Message: fmt.Sprintf("unsupported image media type: %q", mediaType),
		}
	}
	if err != nil {
		return ContentBlock{}, &ValidationError{
			Code:    ErrUnsupportedMediaType,
			Message: "imageData is not valid base64",
		}
	}
	return ImageBlock(mediaType, b64), nil
}
