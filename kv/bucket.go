// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix carving a logical namespace out of a store. The chain keeps
// headers and properties in separate buckets of the same database as the registry state.
type Bucket string

// key returns a fresh slice holding the prefixed key. Batches keep references to the
// keys they are given, so the slice is never reused.
func (b Bucket) key(k []byte) []byte {
	out := make([]byte, 0, len(b)+len(k))
	return append(append(out, b...), k...)
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{
		bucketGetter{b, src},
		bucketPutter{b, src},
		src,
	}
}

type bucketGetter struct {
	bucket Bucket
	src    Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.bucket.key(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.bucket.key(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	bucket Bucket
	src    Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.bucket.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.bucket.key(key)) }

type bucketBulk struct {
	bucketPutter
	bulk Bulk
}

func (b *bucketBulk) Len() int     { return b.bulk.Len() }
func (b *bucketBulk) Write() error { return b.bulk.Write() }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &bucketBulk{bucketPutter{s.bucketGetter.bucket, bulk}, bulk}
}

// Iterate iterates the bucket only. An empty limit stands for the end of the bucket.
func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketGetter.bucket
	prefixed := Range{Start: b.key(r.Start)}
	if len(r.Limit) == 0 {
		prefixed.Limit = util.BytesPrefix([]byte(b)).Limit
	} else {
		prefixed.Limit = b.key(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(prefixed), len(b)}
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

// Key returns the current key with the bucket prefix stripped.
func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
