package repository

import (
	"context"
	"errors"
	"fmt"

	"easyfindshub/internal/config"
	"easyfindshub/internal/db"
)

// ErrUnsupportedStore is returned for an unknown DOCUMENT_STORE value.
var ErrUnsupportedStore = errors.New("unsupported document store")

// NewArticleStore opens the configured document store. The returned close
// function releases its connections.
func NewArticleStore(ctx context.Context, cfg *config.Config) (ArticleRepository, func() error, error) {
	switch cfg.DocumentStore {
	case config.StoreMySQL:
		gdb, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(gdb); err != nil {
			_ = db.Close(gdb)
			return nil, nil, err
		}
		return NewArticleRepository(gdb), func() error { return db.Close(gdb) }, nil
	case config.StoreElasticsearch:
		repo, err := NewESArticleRepository(ctx, cfg.ES)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedStore, cfg.DocumentStore)
	}
}
