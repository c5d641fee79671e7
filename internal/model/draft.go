package model

import "strings"

// DraftFields are the plain form fields of an article being composed.
type DraftFields struct {
	Title    string   `json:"title" validate:"required,min=10"`
	Category Category `json:"category" validate:"required,category"`
	Excerpt  string   `json:"excerpt" validate:"required,max=160"`
	TagsRaw  string   `json:"tags" validate:"required"`
}

// StagedImage is a locally selected cover image waiting for publish.
type StagedImage struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	Data        []byte `json:"-"`
	// PreviewDataURL is empty until the asynchronous read has completed.
	PreviewDataURL string `json:"preview,omitempty"`
}

// PreviewReady reports whether the data URL preview is available.
func (s *StagedImage) PreviewReady() bool {
	return s != nil && s.PreviewDataURL != ""
}

// ArticleDraft is a point-in-time copy of the article form.
type ArticleDraft struct {
	DraftFields
	Content     string       `json:"content"`
	StagedImage *StagedImage `json:"image,omitempty"`
}

// SplitTags splits the raw tag input on commas and trims each element.
// Order and duplicates are kept, and so are empty elements from stray commas
// or whitespace-only input. Only an empty string yields no tags.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
