package resume

import (
	"bytes"
	"unicode/utf8"

	domain "talent-hub/internal/domain/resume"

	"github.com/gabriel-vasile/mimetype"
)

type Kind string

const (
	KindPDF  Kind = "application/pdf"
	KindText Kind = "text/plain"
)

// Sniff classifies a resume by content, ignoring the file name. It also
// rejects documents the model cannot read.
func Sniff(data []byte) (Kind, error) {
	if len(data) == 0 {
		return "", domain.ErrUnparseable
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is(string(KindPDF)):
		if bytes.Contains(data, []byte("/Encrypt")) {
			return "", domain.ErrPasswordProtected
		}
		if !bytes.Contains(data[max(0, len(data)-1024):], []byte("%%EOF")) {
			return "", domain.ErrUnparseable
		}
		return KindPDF, nil
	case mt.Is(string(KindText)):
		if !utf8.Valid(data) {
			return "", domain.ErrUnparseable
		}
		return KindText, nil
	default:
		return "", domain.ErrInvalidFileType
	}
}
