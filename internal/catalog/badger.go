// Rophim - Movie Catalog and Streaming Platform
// Copyright 2026 The Rophim Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/leemjnnkdzuy/rophim

package catalog

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/leemjnnkdzuy/rophim/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	entryKeyPrefix    = "entry:"
	modifiedKeyPrefix = "idx_modified:"
)

// upsertConflictRetries bounds retries of a transaction that lost an optimistic conflict.
const upsertConflictRetries = 3

// BadgerStore implements Store on BadgerDB.
//
// Entries are stored as JSON under entry:<slug>. A secondary index
// idx_modified:<ts><slug> orders entries by ModifiedAt so Latest is a
// single reverse seek.
type BadgerStore struct {
	db *badger.DB
}

type badgerOptions struct {
	inMemory bool
}

// BadgerOption configures NewBadgerStore.
type BadgerOption func(*badgerOptions)

// WithInMemory opens badger without touching disk. Used by tests.
func WithInMemory() BadgerOption {
	return func(o *badgerOptions) {
		o.inMemory = true
	}
}

// NewBadgerStore opens (or creates) a badger catalog at path.
func NewBadgerStore(path string, opts ...BadgerOption) (*BadgerStore, error) {
	cfg := &badgerOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	bopts := badger.DefaultOptions(path)
	if cfg.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger catalog: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an already opened database.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// FindBySlug returns the entry stored for slug.
func (s *BadgerStore) FindBySlug(ctx context.Context, slug string) (entry *models.CatalogEntry, err error) {
	defer observe(BackendBadger, "find", time.Now(), &err)

	err = s.db.View(func(txn *badger.Txn) error {
		var getErr error
		entry, getErr = getEntry(txn, slug)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Upsert writes entry when it is new or strictly fresher than the stored copy.
func (s *BadgerStore) Upsert(ctx context.Context, entry *models.CatalogEntry) (applied bool, err error) {
	defer observe(BackendBadger, "upsert", time.Now(), &err)

	if entry == nil || entry.Slug == "" {
		return false, ErrInvalidEntry
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("marshal entry: %w", err)
	}

	for attempt := 0; attempt < upsertConflictRetries; attempt++ {
		applied, err = s.upsertTxn(entry, data)
		if !errors.Is(err, badger.ErrConflict) {
			return applied, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
	}
	return false, fmt.Errorf("upsert %s: %w", entry.Slug, err)
}

func (s *BadgerStore) upsertTxn(entry *models.CatalogEntry, data []byte) (bool, error) {
	applied := false
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := getEntry(txn, entry.Slug)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return err
		default:
			if !isFresher(entry, existing) {
				return nil
			}
			if err := txn.Delete(modifiedKey(existing)); err != nil {
				return fmt.Errorf("delete modified index: %w", err)
			}
		}

		if err := txn.Set([]byte(entryKeyPrefix+entry.Slug), data); err != nil {
			return fmt.Errorf("set entry: %w", err)
		}
		if err := txn.Set(modifiedKey(entry), []byte(entry.Slug)); err != nil {
			return fmt.Errorf("set modified index: %w", err)
		}
		applied = true
		return nil
	})
	return applied, err
}

// Latest returns the entry with the greatest ModifiedAt.
func (s *BadgerStore) Latest(ctx context.Context) (entry *models.CatalogEntry, err error) {
	defer observe(BackendBadger, "latest", time.Now(), &err)

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		opts.Prefix = []byte(modifiedKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(modifiedKeyPrefix)
		it.Seek(prefixUpperBound(prefix))
		if !it.ValidForPrefix(prefix) {
			return ErrNotFound
		}

		var slug string
		if err := it.Item().Value(func(val []byte) error {
			slug = string(val)
			return nil
		}); err != nil {
			return fmt.Errorf("read modified index: %w", err)
		}

		var getErr error
		entry, getErr = getEntry(txn, slug)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Ping reports whether the database is still open.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger catalog is closed")
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func getEntry(txn *badger.Txn, slug string) (*models.CatalogEntry, error) {
	item, err := txn.Get([]byte(entryKeyPrefix + slug))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	var entry models.CatalogEntry
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entry)
	}); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", slug, err)
	}
	return &entry, nil
}

// prefixUpperBound returns the smallest key greater than every key carrying prefix.
func prefixUpperBound(prefix []byte) []byte {
	bound := append([]byte{}, prefix...)
	bound[len(bound)-1]++
	return bound
}

// modifiedKey builds idx_modified:<8-byte sortable timestamp><slug>.
// The sign bit is flipped so pre-1970 timestamps still sort first.
func modifiedKey(entry *models.CatalogEntry) []byte {
	key := make([]byte, 0, len(modifiedKeyPrefix)+8+len(entry.Slug))
	key = append(key, modifiedKeyPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(entry.ModifiedAt.UnixNano())^(1<<63))
	return append(key, entry.Slug...)
}
