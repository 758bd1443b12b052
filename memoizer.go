package ttlmemo

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-memdb"
)

const (
	entryTable = "memo"
	keyIndex   = "id"
)

// Func is the shape of a function a Memoizer can wrap. Only positional
// arguments exist; they form the cache key.
type Func func(args ...any) (any, error)

type Options struct {
	LogLevel string // "debug", "info", "warn", "error"; empty is silent
	Logger   *log.Logger
	Clock    Clock
}

// Memoizer caches the results of one function keyed by its positional
// arguments. Every entry shares the TTL fixed at construction. Stale entries
// are only detected when their key is looked up again and are then
// overwritten in place; nothing is ever purged.
//
// A Memoizer does not coordinate concurrent calls. Two goroutines missing on
// the same key both invoke the target.
type Memoizer struct {
	db     *memdb.MemDB
	ttl    int
	clock  Clock
	logger *log.Logger
	stats  Stats
}

func New(ttl int, opts Options) (*Memoizer, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			entryTable: {
				Name: entryTable,
				Indexes: map[string]*memdb.IndexSchema{
					keyIndex: {
						Name:    keyIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create memdb: %w", err)
	}

	logger, err := newLogger(opts)
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	return &Memoizer{
		db:     db,
		ttl:    ttl,
		clock:  clock,
		logger: logger,
	}, nil
}

// NewFromValue validates an untyped TTL with ParseTTL before constructing.
func NewFromValue(ttl any, opts Options) (*Memoizer, error) {
	seconds, err := ParseTTL(ttl)
	if err != nil {
		return nil, err
	}
	return New(seconds, opts)
}

// TTL returns the freshness window in seconds.
func (m *Memoizer) TTL() int { return m.ttl }

// Call returns fn(args...) from the cache when a fresh entry exists for args,
// and otherwise invokes fn and stores its result. Errors from fn are returned
// unchanged and leave the cache as it was.
func (m *Memoizer) Call(fn Func, args ...any) (any, error) {
	now := m.clock.Now()

	key, err := encodeKey(args)
	if err != nil {
		return nil, err
	}

	ent, state, err := m.lookup(key, now)
	if err != nil {
		return nil, err
	}

	switch state {
	case Fresh:
		m.stats.Hits++
		m.logger.Debug("hit", "key", key)
		return ent.Value, nil
	case Expired:
		m.stats.Expirations++
		m.logger.Debug("expired", "key", key, "age", ent.Age(now))
	default:
		m.stats.Misses++
		m.logger.Debug("miss", "key", key)
	}

	value, err := fn(args...)
	if err != nil {
		m.stats.Failures++
		return nil, err
	}

	if err := m.store(&Entry{Key: key, Value: value, StoredAt: now}); err != nil {
		return nil, err
	}
	return value, nil
}

// lookup classifies the entry stored under key as of now.
func (m *Memoizer) lookup(key string, now time.Time) (*Entry, State, error) {
	txn := m.db.Txn(false)
	raw, err := txn.First(entryTable, keyIndex, key)
	if err != nil {
		return nil, Missing, fmt.Errorf("failed to retrieve entry: %w", err)
	}
	if raw == nil {
		return nil, Missing, nil
	}

	ent := raw.(*Entry)
	if ent.Age(now) >= m.window() {
		return ent, Expired, nil
	}
	return ent, Fresh, nil
}

// store inserts ent, replacing any entry with the same key.
func (m *Memoizer) store(ent *Entry) error {
	txn := m.db.Txn(true)
	if err := txn.Insert(entryTable, ent); err != nil {
		txn.Abort()
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	txn.Commit()
	return nil
}

func (m *Memoizer) window() time.Duration {
	return time.Duration(m.ttl) * time.Second
}

// Len returns the number of stored entries, stale ones included.
func (m *Memoizer) Len() int {
	txn := m.db.Txn(false)
	it, err := txn.Get(entryTable, keyIndex)
	if err != nil {
		// Only an unknown table or index fails here, and both are fixed by New.
		panic(fmt.Sprintf("ttlmemo: count entries: %v", err))
	}
	count := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		count++
	}
	return count
}

// Stats returns the call counters together with the current entry count.
func (m *Memoizer) Stats() Stats {
	s := m.stats
	s.Entries = m.Len()
	if calls := s.Hits + s.Misses + s.Expirations; calls > 0 {
		s.HitRate = float64(s.Hits) / float64(calls)
	}
	return s
}
