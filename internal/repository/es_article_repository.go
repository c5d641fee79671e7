package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"

	"easyfindshub/internal/config"
	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/model"
)

type esArticleRepository struct {
	client    *elasticsearch.TypedClient
	indexName string
}

// NewESArticleRepository connects to Elasticsearch and makes sure the index exists.
func NewESArticleRepository(ctx context.Context, cfg config.ElasticsearchConfig) (ArticleRepository, error) {
	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.Username != "" && cfg.Password != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewTypedClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	r := &esArticleRepository{client: client, indexName: cfg.Index}
	if err := r.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *esArticleRepository) ensureIndex(ctx context.Context) error {
	exists, err := r.client.Indices.Exists(r.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName, err)
	}
	if exists {
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":        types.NewKeywordProperty(),
			"title":     types.NewTextProperty(),
			"category":  types.NewKeywordProperty(),
			"excerpt":   types.NewTextProperty(),
			"tags":      types.NewKeywordProperty(),
			"content":   types.NewTextProperty(),
			"imageUrl":  types.NewKeywordProperty(),
			"createdAt": types.NewDateProperty(),
		},
	}

	if _, err := r.client.Indices.Create(r.indexName).Mappings(&mappings).Do(ctx); err != nil {
		return fmt.Errorf("create index %s: %w", r.indexName, err)
	}
	slog.Info("elasticsearch index created", "index", r.indexName)
	return nil
}

func (r *esArticleRepository) Create(ctx context.Context, article *model.Article) error {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}

	_, err := r.client.Index(r.indexName).
		Id(article.ID.String()).
		Document(article).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("index article: %w", err)
	}
	return nil
}

func (r *esArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	res, err := r.client.Get(r.indexName, id.String()).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusNotFound {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	if !res.Found {
		return nil, apperrors.ErrArticleNotFound
	}

	var article model.Article
	if err := json.Unmarshal(res.Source_, &article); err != nil {
		return nil, fmt.Errorf("decode article: %w", err)
	}
	return &article, nil
}

func (r *esArticleRepository) List(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	desc := sortorder.Desc
	res, err := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
		Sort(
			&types.SortOptions{SortOptions: map[string]types.FieldSort{"createdAt": {Order: &desc}}},
			&types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &desc}}},
		).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	articles := make([]model.Article, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var article model.Article
		if err := json.Unmarshal(hit.Source_, &article); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}
