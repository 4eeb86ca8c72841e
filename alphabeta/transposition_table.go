package alphabeta

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/tokonoma/hexstack/game"
)

// Approximate size of a TableEntry in bytes, used to size the table.
const entrySize = 80

const (
	minSizePowerOf2 = 12
	maxSizePowerOf2 = 30
)

// TableEntry caches the score of a searched position. The position itself
// is kept so that a hash collision is detected instead of returning a
// score for the wrong position.
type TableEntry struct {
	hash  uint64
	pos   game.Position
	score game.Score
	depth uint8
	valid bool
}

func (t TableEntry) Depth() int        { return int(t.depth) }
func (t TableEntry) Score() game.Score { return t.score }

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

// TranspositionTable maps positions to the deepest score computed for them.
// It is owned by the caller and may be reused across searches.
type TranspositionTable struct {
	TableLock
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// Slot taken by an unrelated position.
	t2collisions atomic.Uint64
	// Same full hash, different position.
	t1collisions atomic.Uint64
}

// NewTranspositionTable allocates a single-threaded table of
// 2^sizePowerOf2 entries.
func NewTranspositionTable(sizePowerOf2 int) *TranspositionTable {
	t := &TranspositionTable{}
	t.SetSingleThreadedMode()
	t.ResetSize(sizePowerOf2)
	return t
}

func (t *TranspositionTable) SetSingleThreadedMode() {
	t.TableLock = &FakeLock{}
}

func (t *TranspositionTable) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

// Lookup returns the cached score for pos if it was computed at depth or
// deeper.
func (t *TranspositionTable) Lookup(pos game.Position, depth int) (game.Score, bool) {
	return t.lookup(pos.Hash(), pos, depth)
}

func (t *TranspositionTable) lookup(hash uint64, pos game.Position, depth int) (game.Score, bool) {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	entry := t.table[hash&t.sizeMask]
	if !entry.valid {
		return game.Even, false
	}
	if entry.hash != hash {
		t.t2collisions.Add(1)
		return game.Even, false
	}
	if entry.pos != pos {
		t.t1collisions.Add(1)
		return game.Even, false
	}
	if int(entry.depth) < depth {
		return game.Even, false
	}
	t.hits.Add(1)
	return entry.score, true
}

// Insert stores score for pos. An existing entry for the same position is
// only replaced by a deeper one; an unrelated position in the slot is
// evicted.
func (t *TranspositionTable) Insert(pos game.Position, depth int, score game.Score) {
	t.insert(pos.Hash(), pos, depth, score)
}

func (t *TranspositionTable) insert(hash uint64, pos game.Position, depth int, score game.Score) {
	idx := hash & t.sizeMask
	t.Lock()
	defer t.Unlock()
	existing := t.table[idx]
	if existing.valid && existing.hash == hash && existing.pos == pos &&
		int(existing.depth) >= depth {
		return
	}
	t.table[idx] = TableEntry{
		hash:  hash,
		pos:   pos,
		score: score,
		depth: uint8(min(depth, math.MaxUint8)),
		valid: true,
	}
	t.created.Add(1)
}

// Reset sizes the table to roughly the given fraction of system memory
// and clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	power := minSizePowerOf2
	if desiredNElems > 1 {
		power = int(math.Log2(desiredNElems))
	}
	t.ResetSize(power)
	log.Info().Int("num-elems", len(t.table)).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", len(t.table)*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
}

// ResetSize clears the table and resizes it to 2^sizePowerOf2 entries.
func (t *TranspositionTable) ResetSize(sizePowerOf2 int) {
	if t.TableLock == nil {
		t.SetSingleThreadedMode()
	}
	t.Lock()
	defer t.Unlock()
	sizePowerOf2 = max(minSizePowerOf2, min(sizePowerOf2, maxSizePowerOf2))
	numElems := 1 << sizePowerOf2
	if t.table != nil && len(t.table) == numElems {
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	t.sizePowerOf2 = sizePowerOf2
	t.sizeMask = uint64(numElems - 1)

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t1collisions.Store(0)
	t.t2collisions.Store(0)
}

// Clear empties the table without resizing it.
func (t *TranspositionTable) Clear() {
	t.ResetSize(t.sizePowerOf2)
}

// TableStats is a snapshot of the table counters.
type TableStats struct {
	Size         int    `yaml:"size"`
	Created      uint64 `yaml:"created"`
	Lookups      uint64 `yaml:"lookups"`
	Hits         uint64 `yaml:"hits"`
	T1Collisions uint64 `yaml:"t1_collisions"`
	T2Collisions uint64 `yaml:"t2_collisions"`
}

func (t *TranspositionTable) Stats() TableStats {
	return TableStats{
		Size:         len(t.table),
		Created:      t.created.Load(),
		Lookups:      t.lookups.Load(),
		Hits:         t.hits.Load(),
		T1Collisions: t.t1collisions.Load(),
		T2Collisions: t.t2collisions.Load(),
	}
}
