package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"easyfindshub/internal/model"
	"easyfindshub/internal/repository"
)

// MaxListLimit bounds a single page of the landing view.
const MaxListLimit = 100

// ArticleService serves published articles. It never writes.
type ArticleService interface {
	List(ctx context.Context, limit int) ([]model.Article, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Article, error)
}

type articleService struct {
	articles repository.ArticleRepository
}

// NewArticleService creates an article service.
func NewArticleService(articles repository.ArticleRepository) ArticleService {
	return &articleService{articles: articles}
}

// List returns the newest articles first.
func (s *articleService) List(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	articles, err := s.articles.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *articleService) Get(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return s.articles.FindByID(ctx, id)
}
