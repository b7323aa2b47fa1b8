// Package store keeps an index of recorded movement logs.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const sessionBucket = "sessions"

var errIndexLocked = errors.New(
	"session index is locked: is another recording running?",
)

// SessionRecord describes one logging run.
type SessionRecord struct {
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`
	FilePath  string    `json:"file_path"`
	TimeZone  string    `json:"time_zone"`
	LogHz     float64   `json:"log_hz"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
	Rows      uint64    `json:"rows"`
}

func (r *SessionRecord) key() []byte {
	return []byte(r.StartedAt.UTC().Format(time.RFC3339Nano))
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Open opens (or creates) the index at path.
func Open(path string) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errIndexLocked
		}
		return nil, fmt.Errorf("open session index: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init session index: %w", err)
	}

	return &Client{db}, nil
}

// SaveSession creates or overwrites the record for rec's start time.
func (c *Client) SaveSession(rec *SessionRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put(rec.key(), value)
	})
}

// ListSessions returns every record, newest first.
func (c *Client) ListSessions() ([]SessionRecord, error) {
	var records []SessionRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var rec SessionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode session %s: %w", k, err)
			}
			records = append(records, rec)
		}

		return nil
	})

	return records, err
}
