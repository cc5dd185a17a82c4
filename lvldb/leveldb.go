// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb stores the chain headers and the registry state in goleveldb.
package lvldb

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	pkgerrors "github.com/pkg/errors"

	"github.com/vechain/mnreg/kv"
)

var _ kv.StoreCloser = (*LevelDB)(nil)

// Options tunes the database. Zero values select the defaults.
type Options struct {
	CacheSize              int // megabytes
	OpenFilesCacheCapacity int

	// NoSync skips fsync on bulk writes. A crash may then lose the latest commits,
	// which is acceptable for throwaway devnets only.
	NoSync bool
}

const minCapacity = 16

func (o Options) dbOptions() *opt.Options {
	cacheSize := max(o.CacheSize, minCapacity)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, minCapacity),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	}
}

// LevelDB is a kv.Store over goleveldb. Single writes are unsynced, bulk writes, which
// carry every state commit and new block, are synced unless disabled.
type LevelDB struct {
	db       *leveldb.DB
	bulkSync *opt.WriteOptions
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open storage [%v]", path)
	}
	return open(stg, opts)
}

// NewMem creates a database living in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.dbOptions())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open level db")
	}
	return &LevelDB{
		db:       db,
		bulkSync: &opt.WriteOptions{Sync: !opts.NoSync},
	}, nil
}

// IsNotFound reports whether err returned by Get means the key is absent.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, nil)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, nil)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, nil)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, nil)
}

// Close releases the database. Later operations all fail.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// Bulk creates an atomic batch.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &bulk{new(leveldb.Batch), ldb}
}

// Iterate iterates keys within r in ascending order.
func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type bulk struct {
	*leveldb.Batch
	ldb *LevelDB
}

func (b *bulk) Put(key, value []byte) error {
	b.Batch.Put(key, value)
	return nil
}

func (b *bulk) Delete(key []byte) error {
	b.Batch.Delete(key)
	return nil
}

func (b *bulk) Write() error {
	n := b.Len()
	if err := b.ldb.db.Write(b.Batch, b.ldb.bulkSync); err != nil {
		return err
	}
	metricBulkWrites().Add(1)
	metricBulkOps().Add(int64(n))
	b.Reset()
	return nil
}
