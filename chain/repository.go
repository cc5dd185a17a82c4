// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/vechain/mnreg/cache"
	"github.com/vechain/mnreg/co"
	"github.com/vechain/mnreg/kv"
	"github.com/vechain/mnreg/log"
	"github.com/vechain/mnreg/mn"
)

const (
	hdrStoreName  = "chain.hdr"   // for block headers, keyed by number
	propStoreName = "chain.props" // for property-named values such as best block
)

var (
	logger = log.WithContext("pkg", "chain")

	errNotFound      = errors.New("not found")
	bestBlockNumKey  = []byte("best-block-num")
	errTimeNotInSync = errors.New("block time not after parent")
)

// Repository stores the headers of the solo chain.
//
// It's thread-safe.
type Repository struct {
	db        kv.Store
	hdrStore  kv.Store
	propStore kv.Store

	genesis *Header
	best    atomic.Pointer[Header]
	tick    co.Signal
	mu      sync.Mutex

	headers *cache.LRU[uint32, *Header]
}

// NewRepository opens the chain kept in db, or initializes it with a genesis block at genesisTime.
func NewRepository(db kv.Store, genesisTime uint64) (*Repository, error) {
	headers, err := cache.NewLRU[uint32, *Header](512)
	if err != nil {
		return nil, err
	}
	repo := &Repository{
		db:        db,
		hdrStore:  kv.Bucket(hdrStoreName).NewStore(db),
		propStore: kv.Bucket(propStoreName).NewStore(db),
		headers:   headers,
	}

	genesis, err := loadHeader(repo.hdrStore, 0)
	if err != nil {
		if !repo.hdrStore.IsNotFound(err) {
			return nil, errors.Wrap(err, "load genesis")
		}
		genesis = NewHeader(mn.Bytes32{}, 0, genesisTime)
		if err := repo.saveBlock(genesis); err != nil {
			return nil, err
		}
		repo.genesis = genesis
		return repo, nil
	}
	repo.genesis = genesis

	var bestNum uint32
	if err := loadRLP(repo.propStore, bestBlockNumKey, &bestNum); err != nil {
		return nil, errors.Wrap(err, "load best block number")
	}
	best, err := repo.GetBlock(bestNum)
	if err != nil {
		return nil, errors.Wrap(err, "load best block")
	}
	repo.best.Store(best)
	metricBestBlock().Set(int64(best.Number()))
	return repo, nil
}

// GenesisBlock returns genesis block.
func (r *Repository) GenesisBlock() *Header {
	return r.genesis
}

// BestBlock returns the newest block.
func (r *Repository) BestBlock() *Header {
	return r.best.Load()
}

// NewTicker returns a channel closed when the next block is added.
func (r *Repository) NewTicker() <-chan struct{} {
	return r.tick.C()
}

// IsNotFound returns if an error means not found.
func (r *Repository) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || r.hdrStore.IsNotFound(err)
}

func (r *Repository) saveBlock(header *Header) error {
	var (
		bulk       = r.db.Bulk()
		hdrPutter  = kv.Bucket(hdrStoreName).NewPutter(bulk)
		propPutter = kv.Bucket(propStoreName).NewPutter(bulk)
	)
	if err := saveHeader(hdrPutter, header); err != nil {
		return err
	}
	if err := saveRLP(propPutter, bestBlockNumKey, header.Number()); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return err
	}

	r.headers.Add(header.Number(), header)
	r.best.Store(header)
	r.tick.Broadcast()
	metricBestBlock().Set(int64(header.Number()))
	return nil
}

// NewBlock appends a block at time on top of the best block.
func (r *Repository) NewBlock(time uint64) (*Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parent := r.BestBlock()
	if time <= parent.Time() {
		return nil, errTimeNotInSync
	}
	header := NewHeader(parent.ID(), parent.Number()+1, time)
	if err := r.saveBlock(header); err != nil {
		return nil, errors.Wrap(err, "save block")
	}
	logger.Debug("new block", "number", header.Number(), "id", header.ID(), "time", time)
	return header, nil
}

// GetBlock returns the header of block num.
func (r *Repository) GetBlock(num uint32) (*Header, error) {
	if best := r.BestBlock(); best != nil && num > best.Number() {
		return nil, errNotFound
	}
	if h, ok := r.headers.Get(num); ok {
		metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "hit"})
		return h, nil
	}
	metricCacheHitMiss().AddWithLabel(1, map[string]string{"event": "miss"})

	h, err := loadHeader(r.hdrStore, num)
	if err != nil {
		return nil, err
	}
	r.headers.Add(num, h)
	return h, nil
}

// GetBlockID returns id of block num.
func (r *Repository) GetBlockID(num uint32) (mn.Bytes32, error) {
	h, err := r.GetBlock(num)
	if err != nil {
		return mn.Bytes32{}, err
	}
	return h.ID(), nil
}
