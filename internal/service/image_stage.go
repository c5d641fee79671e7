package service

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"easyfindshub/internal/model"
)

// ImageStage holds the cover image picked for a draft until publish or removal.
// The data URL preview is derived on a goroutine; a later SetImage or Clear
// supersedes a read still in flight.
type ImageStage struct {
	mu    sync.Mutex
	gen   uint64
	image *model.StagedImage
	done  chan struct{}

	// encode builds the preview; swapped in tests to hold the read open.
	encode func(contentType string, data []byte) string
}

// NewImageStage returns an empty stage.
func NewImageStage() *ImageStage {
	return &ImageStage{encode: dataURL}
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SetImage stages a copy of data. Any file is accepted.
func (s *ImageStage) SetImage(fileName string, data []byte) {
	buf := append([]byte(nil), data...)
	contentType := mimetype.Detect(buf).String()
	done := make(chan struct{})

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.image = &model.StagedImage{
		FileName:    fileName,
		ContentType: contentType,
		Size:        len(buf),
		Data:        buf,
	}
	s.done = done
	encode := s.encode
	s.mu.Unlock()

	go func() {
		defer close(done)
		preview := encode(contentType, buf)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen && s.image != nil {
			s.image.PreviewDataURL = preview
		}
	}()
}

// Clear drops the file and its preview immediately.
func (s *ImageStage) Clear() {
	s.mu.Lock()
	s.gen++
	s.image = nil
	s.done = nil
	s.mu.Unlock()
}

// Staged returns a copy of the staged image, or nil when nothing is staged.
func (s *ImageStage) Staged() *model.StagedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return nil
	}
	cp := *s.image
	return &cp
}

// Preview returns the data URL once the read has completed.
func (s *ImageStage) Preview() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.image.PreviewReady() {
		return "", false
	}
	return s.image.PreviewDataURL, true
}

// Wait blocks until the current preview read has finished or ctx is done.
func (s *ImageStage) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
