package catalog

import (
	"context"
	"fmt"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/dataset"
)

// IngestSummary reports one Ingest run.
type IngestSummary struct {
	Restaurants int
	Items       int
	Written     int
}

// Ingest loads the cleaned dataset at path, checks it against the handoff
// contract, flattens it and writes every item to the menu table. A file that
// fails the contract writes nothing.
func Ingest(ctx context.Context, store *MenuStore, path string, log logger.Logger) (*IngestSummary, error) {
	restaurants, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := dataset.Validate(restaurants); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	records := Flatten(restaurants)

	log.Info("ingesting menu items", map[string]interface{}{
		"restaurants": len(restaurants),
		"items":       len(records),
		"table":       store.table,
	})

	written, err := store.BatchPut(ctx, records)
	summary := &IngestSummary{Restaurants: len(restaurants), Items: len(records), Written: written}
	if err != nil {
		return summary, fmt.Errorf("batch put: %w", err)
	}
	return summary, nil
}

// Truncate deletes every item from the menu table and returns how many were removed.
func Truncate(ctx context.Context, store *MenuStore, log logger.Logger) (int, error) {
	keys, err := store.ScanKeys(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		log.Info("menu table already empty", map[string]interface{}{"table": store.table})
		return 0, nil
	}

	log.Info("deleting menu items", map[string]interface{}{"count": len(keys), "table": store.table})
	return store.BatchDelete(ctx, keys)
}

// ReindexSummary reports one Reindex run.
type ReindexSummary struct {
	Scanned int
	Bulk    *BulkResult
	Count   int64
}

// Reindex rebuilds the search index from a full scan of the menu table.
func Reindex(ctx context.Context, store *MenuStore, index *SearchIndex, log logger.Logger) (*ReindexSummary, error) {
	records, err := store.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := &ReindexSummary{Scanned: len(records)}

	if err := index.Recreate(ctx); err != nil {
		return summary, err
	}
	if summary.Bulk, err = index.BulkIndex(ctx, records); err != nil {
		return summary, err
	}
	if err := index.Refresh(ctx); err != nil {
		return summary, err
	}
	if summary.Count, err = index.Count(ctx); err != nil {
		return summary, err
	}

	log.Info("search index rebuilt", map[string]interface{}{
		"index":             index.Name(),
		"scanned":           summary.Scanned,
		"indexed":           summary.Bulk.Indexed,
		"failed":            summary.Bulk.Failed,
		"batchesWithErrors": summary.Bulk.BatchesWithErrors,
		"count":             summary.Count,
	})
	return summary, nil
}
