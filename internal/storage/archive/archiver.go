package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quantpulse/pulse/internal/backtest"
	"github.com/quantpulse/pulse/internal/core"
)

// Archiver writes engine outputs to a storage backend as timestamped JSON
// documents.
type Archiver struct {
	storage Storage
}

// NewArchiver wraps a storage backend.
func NewArchiver(storage Storage) *Archiver {
	return &Archiver{storage: storage}
}

// SaveResult archives a backtest result under results/<label>/<timestamp>.json
// and returns the written path.
func (a *Archiver) SaveResult(ctx context.Context, label string, result backtest.Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling result: %w", err)
	}
	path := fmt.Sprintf("results/%s/%s.json", label, time.Now().UTC().Format("20060102T150405Z"))
	if err := a.storage.Write(ctx, path, data); err != nil {
		return "", fmt.Errorf("writing result archive: %w", err)
	}
	return path, nil
}

// SaveSignals archives a generation run's signals under
// signals/<label>/<timestamp>.json and returns the written path.
func (a *Archiver) SaveSignals(ctx context.Context, label string, signals []core.Signal) (string, error) {
	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling signals: %w", err)
	}
	path := fmt.Sprintf("signals/%s/%s.json", label, time.Now().UTC().Format("20060102T150405Z"))
	if err := a.storage.Write(ctx, path, data); err != nil {
		return "", fmt.Errorf("writing signal archive: %w", err)
	}
	return path, nil
}

// LoadResult reads an archived backtest result back.
func (a *Archiver) LoadResult(ctx context.Context, path string) (*backtest.Result, error) {
	data, err := a.storage.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading result archive: %w", err)
	}
	var result backtest.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &result, nil
}

// ListResults returns the archived result paths for a label.
func (a *Archiver) ListResults(ctx context.Context, label string) ([]string, error) {
	return a.storage.List(ctx, "results/"+label)
}
