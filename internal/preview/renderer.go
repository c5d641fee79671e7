// Package preview renders a read-only approximation of a published article
// from the live draft.
package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"easyfindshub/internal/model"
)

// TitlePlaceholder is shown while the draft has no title.
const TitlePlaceholder = "Untitled article"

//go:embed templates/article.html
var templateFS embed.FS

// Renderer turns draft snapshots into HTML. It is safe for concurrent use.
type Renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewRenderer parses the embedded template and builds the sanitising policy.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/article.html")
	if err != nil {
		return nil, fmt.Errorf("parse preview template: %w", err)
	}

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{tmpl: tmpl, policy: p}, nil
}

type view struct {
	ImageURL      template.URL
	Title         string
	Placeholder   bool
	CategoryLabel string
	Tags          []string
	Excerpt       string
	Content       template.HTML
}

// Render projects the draft to HTML. It never modifies the draft.
func (r *Renderer) Render(draft model.ArticleDraft) (string, error) {
	v := view{
		Title:   strings.TrimSpace(draft.Title),
		Excerpt: draft.Excerpt,
		Tags:    model.SplitTags(draft.TagsRaw),
		Content: template.HTML(r.policy.Sanitize(draft.Content)),
	}
	if v.Title == "" {
		v.Title, v.Placeholder = TitlePlaceholder, true
	}
	if draft.Category != "" {
		v.CategoryLabel = draft.Category.Label()
	}
	if draft.StagedImage.PreviewReady() {
		// data: URLs come from our own image stager, not from user-typed markup.
		v.ImageURL = template.URL(draft.StagedImage.PreviewDataURL)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}
