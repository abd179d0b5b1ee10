package model

import "strings"

// PageText is one page of decoded document text.
type PageText struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// Document is the decoded input to the extraction engine: full text plus a
// per-page index used for page-number resolution. PDF/DOCX parsing and OCR
// happen upstream.
type Document struct {
	Filename string     `json:"filename"`
	FullText string     `json:"full_text"`
	Pages    []PageText `json:"pages"`
}

// NewDocument builds a single-page document from plain text.
func NewDocument(filename, text string) *Document {
	return &Document{
		Filename: filename,
		FullText: text,
		Pages:    []PageText{{PageNumber: 1, Text: text}},
	}
}

// ResolvePage returns the page containing the given source snippet, matching
// on the first 100 characters, or 0 if not found.
func (d *Document) ResolvePage(sourceText string) int {
	s := strings.ToLower(strings.TrimSpace(sourceText))
	if s == "" {
		return 0
	}
	if len(s) > 100 {
		s = s[:100]
	}
	for _, p := range d.Pages {
		if strings.Contains(strings.ToLower(p.Text), s) {
			return p.PageNumber
		}
	}
	return 0
}
