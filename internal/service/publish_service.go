package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/metrics"
	"easyfindshub/internal/model"
	"easyfindshub/internal/repository"
	"easyfindshub/internal/storage"
)

// CreatedAtLayout is ISO-8601 in UTC with millisecond precision.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// PublishService turns a validated draft into a published article.
type PublishService interface {
	Publish(ctx context.Context, draft model.ArticleDraft) (*model.Article, error)
}

type publishService struct {
	objects  storage.ObjectStore
	articles repository.ArticleRepository
	now      func() time.Time
	newID    func() uuid.UUID
}

// NewPublishService creates a publish service.
func NewPublishService(objects storage.ObjectStore, articles repository.ArticleRepository) PublishService {
	return &publishService{
		objects:  objects,
		articles: articles,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Publish uploads the staged image, if any, and then writes the article.
// The upload strictly precedes the write. When the write fails the uploaded
// object is removed again.
func (s *publishService) Publish(ctx context.Context, draft model.ArticleDraft) (*model.Article, error) {
	start := s.now()

	var objectKey, imageURL string
	if img := draft.StagedImage; img != nil {
		objectKey = ObjectKey(start, s.newID(), img.FileName)
		if err := s.objects.Put(ctx, objectKey, img.Data, img.ContentType); err != nil {
			metrics.RecordPublish(metrics.StatusUploadFailed, time.Since(start).Seconds())
			slog.Error("cover upload failed", "key", objectKey, "error", err)
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
		}
		metrics.UploadBytes.Observe(float64(len(img.Data)))
		imageURL = s.objects.PublicURL(objectKey)
	}

	article := &model.Article{
		ID:        s.newID(),
		Title:     draft.Title,
		Category:  draft.Category,
		Excerpt:   draft.Excerpt,
		Tags:      model.SplitTags(draft.TagsRaw),
		Content:   draft.Content,
		ImageURL:  imageURL,
		CreatedAt: s.now().UTC().Format(CreatedAtLayout),
	}

	if err := s.articles.Create(ctx, article); err != nil {
		metrics.RecordPublish(metrics.StatusPersistFailed, time.Since(start).Seconds())
		slog.Error("article write failed", "title", article.Title, "error", err)
		if objectKey != "" {
			// the request may already be cancelled; the blob should still go
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if derr := s.objects.Delete(cleanupCtx, objectKey); derr != nil {
				slog.Error("orphaned cover image", "key", objectKey, "error", derr)
			}
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistFailed, err)
	}

	metrics.RecordPublish(metrics.StatusSuccess, time.Since(start).Seconds())
	slog.Info("article published", "id", article.ID, "category", article.Category, "image", imageURL != "")
	return article, nil
}

// ObjectKey builds articles/{epochMillis}-{id}-{fileName}. Only the base name
// of fileName is kept.
func ObjectKey(t time.Time, id uuid.UUID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" {
		name = "image"
	}
	return "articles/" + strconv.FormatInt(t.UnixMilli(), 10) + "-" + id.String() + "-" + name
}
