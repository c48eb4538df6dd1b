package textutils

import (
	"fmt"
	"unicode/utf8"

	"concilia/internal/parsererror"

	"golang.org/x/text/encoding/charmap"
)

// MaxUploadBytes is the ceiling enforced on uploaded statement files.
const MaxUploadBytes = 10 * 1024 * 1024

// DecodeUpload turns the raw bytes of an uploaded statement into repaired
// UTF-8 text. Files that are not valid UTF-8 are decoded as ISO-8859-1,
// which is what legacy Brazilian bank exports actually ship. The result is
// passed through Normalize to fix double-encoding artifacts that survive
// a correct decode.
func DecodeUpload(data []byte) (string, error) {
	if len(data) > MaxUploadBytes {
		return "", &parsererror.ValidationError{
			Source: "upload",
			Reason: fmt.Sprintf("file exceeds %d bytes", MaxUploadBytes),
		}
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", &parsererror.ValidationError{
				Source: "upload",
				Reason: fmt.Sprintf("could not decode file as UTF-8 or ISO-8859-1: %v", err),
			}
		}
		data = decoded
	}

	return Normalize(string(data)), nil
}
