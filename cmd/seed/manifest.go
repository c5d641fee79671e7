package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"

	"easyfindshub/internal/model"
)

// Manifest is the seed file layout.
type Manifest struct {
	Articles []ManifestEntry `yaml:"articles"`
}

// ManifestEntry is one article to publish. Image is a path relative to the
// manifest file.
type ManifestEntry struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Excerpt  string   `yaml:"excerpt"`
	Tags     []string `yaml:"tags"`
	Content  string   `yaml:"content"`
	Image    string   `yaml:"image"`
}

// LoadManifest reads and decodes path. Unknown keys are rejected.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if len(m.Articles) == 0 {
		return nil, errors.New("manifest has no articles")
	}
	return &m, nil
}

// Draft converts the entry into a draft. The image, if any, is read from disk
// relative to baseDir.
func (e ManifestEntry) Draft(baseDir string) (model.ArticleDraft, error) {
	draft := model.ArticleDraft{
		DraftFields: model.DraftFields{
			Title:    e.Title,
			Category: model.Category(e.Category),
			Excerpt:  e.Excerpt,
			TagsRaw:  joinTags(e.Tags),
		},
		Content: e.Content,
	}
	if e.Image == "" {
		return draft, nil
	}

	path := e.Image
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return draft, fmt.Errorf("read image: %w", err)
	}
	draft.StagedImage = &model.StagedImage{
		FileName:    filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Size:        len(data),
		Data:        data,
	}
	return draft, nil
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
