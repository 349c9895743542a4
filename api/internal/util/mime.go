package util

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURL splits a "data:<mime>;base64,<payload>" string into its media
// type and base64 payload. The payload is checked for valid base64 but
// returned still encoded, since the upstream API wants base64. When the
// payload is malformed the declared media type is still returned alongside
// the error, so callers can report an unsupported type before a bad payload.
func DecodeDataURL(s string) (mediaType, b64 string, err error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return "", "", fmt.Errorf("not a data URI")
	}
	idx := strings.IndexByte(s, ',')
	if idx < 0 {
		return "", "", fmt.Errorf("data URI has no payload")
	}
	meta := s[len("data:"):idx] // "<mime>;base64"
	if semi := strings.IndexByte(meta, ';'); semi >= 0 {
		mediaType = meta[:semi]
	} else {
		mediaType = meta
	}
	b64 = s[idx+1:]
	// Standard alphabet first, then URL-safe for odd encoders.
	if _, derr := base64.StdEncoding.DecodeString(b64); derr == nil {
		return mediaType, b64, nil
	}
	if raw, derr := base64.URLEncoding.DecodeString(b64); derr == nil {
		return mediaType, base64.StdEncoding.EncodeToString(raw), nil
	}
	return mediaType, "", fmt.Errorf("payload is not valid base64")
}

func MakeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func SniffMimeHTTP(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	return "application/octet-stream"
}
