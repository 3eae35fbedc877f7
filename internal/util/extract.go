package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MinExtractedChars guards against scanned-image PDFs and empty uploads;
// anything shorter cannot be meaningfully screened.
const MinExtractedChars = 100

// ExtractPDFText pulls the embedded text layer out of a PDF, page by page.
func ExtractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	var lastErr error
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	result := strings.Join(pages, "\n\n")
	if len(result) == 0 {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF (the document may be a scanned image)")
	}
	if len(result) < MinExtractedChars {
		return "", fmt.Errorf("content too short for meaningful screening")
	}
	return result, nil
}
