package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"easyfindshub/internal/model"
	"easyfindshub/internal/repository"
	"easyfindshub/internal/service"
	"easyfindshub/internal/storage"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish every article in a manifest",
	Long: `Validate each manifest entry with the dashboard rules and publish the
valid ones. Invalid entries are reported and skipped.

Examples:
  seed publish --file articles.yaml             # Publish all valid entries
  seed publish --file articles.yaml --dry-run   # Only validate`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringP("file", "f", "articles.yaml", "manifest to publish")
	publishCmd.Flags().Bool("dry-run", false, "validate without publishing")
}

func runPublish(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	manifest, err := LoadManifest(file)
	if err != nil {
		return err
	}

	drafts, invalid := prepareDrafts(manifest, filepath.Dir(file), service.NewDraftValidator())
	slog.Info("manifest checked", "file", file, "valid", len(drafts), "invalid", invalid)
	if dryRun || len(drafts) == 0 {
		if invalid > 0 {
			return fmt.Errorf("%d invalid entries", invalid)
		}
		return nil
	}

	ctx := cmd.Context()
	articles, closeStore, err := repository.NewArticleStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	objects, err := storage.NewMinioStore(cfg.ObjectStore)
	if err != nil {
		return err
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		return err
	}

	published := publishAll(ctx, service.NewPublishService(objects, articles), drafts)
	slog.Info("seed finished", "published", published, "failed", len(drafts)-published, "invalid", invalid)
	if published < len(drafts) || invalid > 0 {
		return errors.New("some articles were not published")
	}
	return nil
}

// prepareDrafts converts and validates every entry, logging the ones that fail.
func prepareDrafts(m *Manifest, baseDir string, validator *service.DraftValidator) ([]model.ArticleDraft, int) {
	var drafts []model.ArticleDraft
	invalid := 0
	for i, entry := range m.Articles {
		draft, err := entry.Draft(baseDir)
		if err == nil {
			err = validator.Validate(draft.DraftFields)
		}
		if err != nil {
			slog.Warn("skipping entry", "index", i, "title", entry.Title, "error", err)
			invalid++
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, invalid
}

func publishAll(ctx context.Context, publisher service.PublishService, drafts []model.ArticleDraft) int {
	published := 0
	for _, draft := range drafts {
		article, err := publisher.Publish(ctx, draft)
		if err != nil {
			slog.Error("publish failed", "title", draft.Title, "error", err)
			continue
		}
		slog.Debug("published", "id", article.ID, "title", article.Title)
		published++
	}
	return published
}
