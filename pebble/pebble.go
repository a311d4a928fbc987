// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	CacheSize                   int64  `json:"cacheSize"`
	BytesPerSync                int    `json:"bytesPerSync"`
	WALBytesPerSync             int    `json:"walBytesPerSync"`
	MemTableStopWritesThreshold int    `json:"memTableStopWritesThreshold"`
	MemTableSize                uint64 `json:"memTableSize"`
	MaxOpenFiles                int    `json:"maxOpenFiles"`
	ConcurrentCompactions       int    `json:"concurrentCompactions"`
	Sync                        bool   `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   64 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                1_024,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database is a key-value store backed by pebble that supports point reads
// and atomic batches.
type Database struct {
	db      *pebble.DB
	metrics *metrics

	writeOptions *pebble.WriteOptions

	closing chan struct{}
	wg      sync.WaitGroup
}

// New opens (or creates) the database at [file]. The returned registry
// carries the database metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	// These default settings are based on https://github.com/ethereum/go-ethereum/blob/master/ethdb/pebble/pebble.go
	cache := pebble.NewCache(cfg.CacheSize)
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:                       cache,
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                cfg.MemTableSize,
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	db := &Database{
		metrics: metrics,
		closing: make(chan struct{}),
	}
	if cfg.Sync {
		db.writeOptions = pebble.Sync
	} else {
		db.writeOptions = pebble.NoSync
	}
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: db.onCompactionBegin,
		CompactionEnd:   db.onCompactionEnd,
		WriteStallBegin: db.onWriteStallBegin,
		WriteStallEnd:   db.onWriteStallEnd,
	}
	d, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	db.db = d
	db.wg.Add(1)
	go func() {
		defer db.wg.Done()
		db.collectMetrics()
	}()
	return db, registry, nil
}

func (db *Database) Close() error {
	close(db.closing)
	db.wg.Wait()
	return updateError(db.db.Close())
}

func (db *Database) Has(key []byte) (bool, error) {
	_, closer, err := db.db.Get(key)
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

// Get returns a copy of the value stored at [key].
func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if err != nil {
		return nil, updateError(err)
	}
	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	return updateError(db.db.Set(key, value, db.writeOptions))
}

func (db *Database) Delete(key []byte) error {
	return updateError(db.db.Delete(key, db.writeOptions))
}

func (db *Database) NewBatch() database.Batch {
	return &batch{db: db, batch: db.db.NewBatch()}
}

func updateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pebble.ErrNotFound):
		return database.ErrNotFound
	case errors.Is(err, pebble.ErrClosed):
		return database.ErrClosed
	default:
		return err
	}
}

type op struct {
	key    []byte
	value  []byte
	delete bool
}

type batch struct {
	db    *Database
	batch *pebble.Batch
	ops   []op
	size  int
}

func (b *batch) Put(key []byte, value []byte) error {
	b.ops = append(b.ops, op{key: copyBytes(key), value: copyBytes(value)})
	b.size += len(key) + len(value)
	return b.batch.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: copyBytes(key), delete: true})
	b.size += len(key)
	return b.batch.Delete(key, nil)
}

func (b *batch) Size() int {
	return b.size
}

func (b *batch) Write() error {
	if err := b.batch.Commit(b.db.writeOptions); err != nil {
		return updateError(err)
	}
	b.db.metrics.batchWrites.Inc()
	b.db.metrics.batchBytes.Add(float64(b.size))
	return nil
}

func (b *batch) Reset() {
	b.batch.Reset()
	b.ops = b.ops[:0]
	b.size = 0
}

func (b *batch) Replay(w database.KeyValueWriterDeleter) error {
	for _, o := range b.ops {
		if o.delete {
			if err := w.Delete(o.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(o.key, o.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) Inner() database.Batch {
	return b
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
