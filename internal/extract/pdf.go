// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const MaxUploadBytes = 10 << 20

var (
	ErrNotPDF   = errors.New("file is not a pdf")
	ErrTooLarge = errors.New("file exceeds 10MB")
	ErrNoText   = errors.New("no text found in pdf")
)

// IsPDF sniffs content rather than trusting the upload's file name or
// declared content type.
func IsPDF(data []byte) bool {
	return mimetype.Detect(data).Is("application/pdf")
}

// PDFText returns the text layer of a PDF with runs of blank lines squeezed.
func PDFText(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	if !IsPDF(data) {
		return "", ErrNotPDF
	}

	// the parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}

	text = squeeze(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func squeeze(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
