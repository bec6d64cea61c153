// Package filestore persists the webhook ledger as a single JSON document for
// deployments without a database.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"course-checkout/internal/domain/webhook"
	"course-checkout/internal/infra"
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/pkg/keyedmutex"
)

// every operation on the file shares this key
const lockKey = "webhook-file"

type fileRecord struct {
	EventID     string  `json:"eventId"`
	Processed   bool    `json:"processed"`
	CreatedAt   string  `json:"createdAt"`
	ProcessedAt *string `json:"processedAt,omitempty"`
}

type snapshot map[string]fileRecord

// WebhookLedger serializes all access to the file through one lock key and
// replaces the file atomically on every write, so a crash leaves either the
// previous or the next complete snapshot on disk. It is safe for one process
// only.
type WebhookLedger struct {
	path  string
	clock clock.Clock
	locks *keyedmutex.Mutex
}

func NewWebhookLedger(path string, clk clock.Clock, opts ...keyedmutex.Option) *WebhookLedger {
	return &WebhookLedger{
		path:  path,
		clock: clk,
		locks: keyedmutex.New(opts...),
	}
}

func (l *WebhookLedger) Path() string {
	return l.path
}

func (l *WebhookLedger) Reserve(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, nil
	}
	return keyedmutex.Do(ctx, l.locks, lockKey, func(context.Context) (bool, error) {
		snap, err := l.load()
		if err != nil {
			return false, err
		}
		if _, exists := snap[eventID]; exists {
			return false, nil
		}
		snap[eventID] = toFileRecord(webhook.NewReservation(eventID, l.clock.Now()))
		if err := l.save(snap); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (l *WebhookLedger) MarkProcessed(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	_, err := keyedmutex.Do(ctx, l.locks, lockKey, func(context.Context) (struct{}, error) {
		snap, err := l.load()
		if err != nil {
			return struct{}{}, err
		}
		now := l.clock.Now()

		rec := webhook.NewReservation(eventID, now)
		if existing, ok := snap[eventID]; ok {
			if rec, err = existing.toDomain(); err != nil {
				return struct{}{}, l.corrupt(err)
			}
		}
		snap[eventID] = toFileRecord(rec.MarkProcessed(now))
		return struct{}{}, l.save(snap)
	})
	return err
}

func (l *WebhookLedger) Release(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	_, err := keyedmutex.Do(ctx, l.locks, lockKey, func(context.Context) (struct{}, error) {
		snap, err := l.load()
		if err != nil {
			return struct{}{}, err
		}
		if _, exists := snap[eventID]; !exists {
			return struct{}{}, nil
		}
		delete(snap, eventID)
		return struct{}{}, l.save(snap)
	})
	return err
}

func (l *WebhookLedger) Get(ctx context.Context, eventID string) (*webhook.Record, error) {
	return keyedmutex.Do(ctx, l.locks, lockKey, func(context.Context) (*webhook.Record, error) {
		snap, err := l.load()
		if err != nil {
			return nil, err
		}
		fr, ok := snap[eventID]
		if !ok {
			return nil, infra.NewRepoErr(infra.KindNotFound, "webhook event not found", nil)
		}
		rec, err := fr.toDomain()
		if err != nil {
			return nil, l.corrupt(err)
		}
		return &rec, nil
	})
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (l *WebhookLedger) List(ctx context.Context, limit int) ([]webhook.Record, error) {
	return keyedmutex.Do(ctx, l.locks, lockKey, func(context.Context) ([]webhook.Record, error) {
		snap, err := l.load()
		if err != nil {
			return nil, err
		}
		records := make([]webhook.Record, 0, len(snap))
		for _, fr := range snap {
			rec, err := fr.toDomain()
			if err != nil {
				return nil, l.corrupt(err)
			}
			records = append(records, rec)
		}
		sort.Slice(records, func(i, j int) bool {
			if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
				return records[i].CreatedAt.After(records[j].CreatedAt)
			}
			return records[i].EventID < records[j].EventID
		})
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		return records, nil
	})
}

// load reads the current snapshot. A missing file is an empty ledger; an
// unreadable or malformed one is an error and is never reset.
func (l *WebhookLedger) load() (snapshot, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snapshot{}, nil
		}
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read webhook ledger", err)
	}

	snap := snapshot{}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, l.corrupt(err)
	}
	if snap == nil {
		snap = snapshot{}
	}
	return snap, nil
}

func (l *WebhookLedger) save(snap snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to encode webhook ledger", err)
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return infra.NewRepoErr(infra.KindDBFailure, "failed to create ledger directory", err)
		}
	}

	tmp := l.path + ".tmp"
	if err := writeSynced(tmp, data); err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to write webhook ledger", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to replace webhook ledger", err)
	}
	return nil
}

func (l *WebhookLedger) corrupt(err error) error {
	return infra.NewRepoErr(infra.KindCorruptData, fmt.Sprintf("webhook ledger %s is corrupt", l.path), err)
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
