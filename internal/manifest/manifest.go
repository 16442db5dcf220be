// Package manifest persists the last compile attempt of every asset across
// processes. It backs the status and cache commands and never decides whether
// an asset is compiled; that is the in-process result cache's job.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// FileName is the database file created inside the manifest directory
	FileName = "manifest.db"

	// bucketName is the BoltDB bucket holding one record per asset
	bucketName = "assets"
)

// ErrClosed is returned by operations on a closed manifest
var ErrClosed = errors.New("manifest is closed")

// Manifest stores compile records in BoltDB
type Manifest struct {
	db   *bbolt.DB
	root string
}

// Stats summarizes the manifest contents
type Stats struct {
	Records   int
	Failed    int
	TotalSize int64
}

// Open opens (creating if necessary) the manifest in dir
func Open(dir string) (*Manifest, error) {
	if dir == "" {
		return nil, fmt.Errorf("manifest directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create manifest directory: %w", err)
	}

	dbPath := filepath.Join(dir, FileName)
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create manifest bucket: %w", err)
	}

	return &Manifest{db: db, root: dir}, nil
}

// Dir returns the directory the manifest lives in
func (m *Manifest) Dir() string {
	return m.root
}

// Close closes the manifest database
func (m *Manifest) Close() error {
	if m == nil || m.db == nil {
		return nil
	}

	err := m.db.Close()
	m.db = nil

	return err
}

// Put stores rec, replacing any previous record for the same asset
func (m *Manifest) Put(rec Record) error {
	if m.db == nil {
		return ErrClosed
	}

	if rec.Asset == "" {
		return fmt.Errorf("record has no asset name")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	err = m.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(rec.Asset), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store record for %s: %w", rec.Asset, err)
	}

	return nil
}

// Get returns the record for asset, or nil if none was stored
func (m *Manifest) Get(asset string) (*Record, error) {
	if m.db == nil {
		return nil, ErrClosed
	}

	var rec *Record
	err := m.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(asset))
		if data == nil {
			return nil
		}

		rec = &Record{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read record for %s: %w", asset, err)
	}

	return rec, nil
}

// All returns every record sorted by asset name
func (m *Manifest) All() ([]Record, error) {
	if m.db == nil {
		return nil, ErrClosed
	}

	var records []Record
	err := m.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(_, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Asset < records[j].Asset })

	return records, nil
}

// Clear removes all records
func (m *Manifest) Clear() error {
	if m.db == nil {
		return ErrClosed
	}

	err := m.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear manifest: %w", err)
	}

	return nil
}

// Stats returns record counts and the total size of recorded outputs
func (m *Manifest) Stats() (Stats, error) {
	records, err := m.All()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Records: len(records)}
	for _, rec := range records {
		if !rec.Success {
			stats.Failed++
			continue
		}

		stats.TotalSize += rec.Size
	}

	return stats, nil
}
