// Package deadletter records upstream writes that could not be delivered.
//
// Entries are appended to a bbolt bucket keyed by a monotonically increasing
// sequence number; nothing is retried automatically.
package deadletter

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const bucketWrites = "failed_writes"

// Entry is one failed write.
type Entry struct {
	Seq      uint64         `json:"seq"`
	PostID   int64          `json:"post_id"`
	Fields   map[string]any `json:"fields"`
	Reason   string         `json:"reason"`
	FailedAt time.Time      `json:"failed_at"`
}

type Log struct {
	db *bbolt.DB
}

// Open opens (or creates) the log at path.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create dead letter dir: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open dead letter log: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketWrites))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create dead letter bucket: %w", err)
	}

	return &Log{db: db}, nil
}

// Record appends an entry and returns its sequence number.
func (l *Log) Record(e Entry) (uint64, error) {
	if e.FailedAt.IsZero() {
		e.FailedAt = time.Now().UTC()
	}

	err := l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketWrites))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		e.Seq = seq

		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
	if err != nil {
		return 0, fmt.Errorf("record dead letter: %w", err)
	}
	return e.Seq, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (l *Log) List(limit int) ([]Entry, error) {
	var entries []Entry
	err := l.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketWrites)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("decode entry %d: %w", binary.BigEndian.Uint64(k), err)
			}
			entries = append(entries, e)
			if limit > 0 && len(entries) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of recorded entries.
func (l *Log) Count() (int, error) {
	var n int
	err := l.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket([]byte(bucketWrites)).Stats().KeyN
		return nil
	})
	return n, err
}

func (l *Log) Close() error {
	return l.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
