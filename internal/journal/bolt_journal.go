package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	entriesBucket = "invocations"
	keyBytes      = 12 // 8-byte unix-nano timestamp + 4-byte sequence
)

// boltJournal implements a Journal backed by BoltDB.
type boltJournal struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	seq             atomic.Uint32
	entryTTL        time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Journal.
func openBolt(path string, opts Options) (Journal, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(entriesBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	j := &boltJournal{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	j.lastCleanup.Store(time.Now().Unix())
	return j, nil
}

// Close closes the BoltDB journal.
func (b *boltJournal) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record appends one invocation entry. Keys are time-ordered so Recent can
// walk the bucket backwards.
func (b *boltJournal) Record(entry Entry) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = now.UTC()
	}
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	key := make([]byte, keyBytes)
	binary.BigEndian.PutUint64(key, uint64(entry.OccurredAt.UnixNano()))
	binary.BigEndian.PutUint32(key[8:], b.seq.Add(1))

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		if bucket == nil {
			return fmt.Errorf("invocations bucket missing")
		}
		return bucket.Put(key, value)
	})
}

// Recent returns up to limit entries, newest first.
func (b *boltJournal) Recent(limit int) ([]Entry, error) {
	if b == nil || b.db == nil || limit <= 0 {
		return nil, nil
	}

	var out []Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		if bucket == nil {
			return fmt.Errorf("invocations bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil && len(out) < limit; k, v = cursor.Prev() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue
			}
			out = append(out, entry)
		}
		return nil
	})
	return out, err
}

// maybeCleanupExpired removes entries past their TTL on a fixed cadence to
// avoid unbounded growth.
func (b *boltJournal) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	cutoff := now.Add(-b.entryTTL).UnixNano()
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		if bucket == nil {
			return fmt.Errorf("invocations bucket missing")
		}

		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			if len(k) < 8 {
				if err := cursor.Delete(); err != nil {
					return err
				}
				continue
			}
			ts := int64(binary.BigEndian.Uint64(k[:8]))
			if ts >= cutoff {
				break
			}
			if err := cursor.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}
