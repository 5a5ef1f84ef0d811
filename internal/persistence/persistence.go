package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tbeam-mesh/pacool/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketFanUsage = "fanUsage"
)

type Persistence interface {
	Init() error

	LoadFanUsage(key string) (FanUsage, error)
	// AddFanUsage adds delta to the stored totals and returns the new totals
	AddFanUsage(key string, delta FanUsage) (FanUsage, error)
	DeleteFanUsage(key string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// LoadFanUsage loads the lifetime totals stored for the given key
func (p persistence) LoadFanUsage(key string) (FanUsage, error) {
	db, err := p.openPersistence()
	if err != nil {
		return FanUsage{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var usage FanUsage
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketFanUsage))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}
		return json.Unmarshal(v, &usage)
	})

	return usage, err
}

func (p persistence) AddFanUsage(key string, delta FanUsage) (FanUsage, error) {
	db, err := p.openPersistence()
	if err != nil {
		return FanUsage{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var usage FanUsage
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketFanUsage))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}

		v := b.Get([]byte(key))
		if v != nil {
			err = json.Unmarshal(v, &usage)
			if err != nil {
				// corrupt entries are reset
				ui.Warning("Unable to unmarshal saved fan usage for %s, resetting it: %v", key, err)
				usage = FanUsage{}
			}
		}

		usage = usage.Add(delta)
		usage.UpdatedAt = time.Now()

		data, err := json.Marshal(usage)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})

	return usage, err
}

func (p persistence) DeleteFanUsage(key string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketFanUsage))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(key))
	})
}
