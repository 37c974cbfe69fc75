// Package store keeps converted models in a bolt database, so they
// can be listed and exported later without the original files.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/aaconv/aamodel"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

// MODELS is the bucket name for all the models.
var MODELS = []byte("models")

// Record is a stored model.
type Record struct {
	Model *aamodel.Model `json:"model"`
	// Format is the format the model was read from.
	Format string `json:"format"`
	// Source is the file or directory the model was read from.
	Source string `json:"source"`
	// Saved is the time the record was saved.
	Saved time.Time `json:"saved"`
}

// ModelIO saves and loads models.
type ModelIO struct {
	db *bolt.DB
}

// Open opens (or creates) a model database.
func Open(path string) (*ModelIO, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return NewModelIO(db), nil
}

// NewModelIO creates a new ModelIO.
func NewModelIO(db *bolt.DB) *ModelIO {
	return &ModelIO{db: db}
}

// Close closes the database.
func (s *ModelIO) Close() error {
	return s.db.Close()
}

// Save saves a model record under the key.
func (s *ModelIO) Save(key string, rec *Record) error {
	if rec.Saved.IsZero() {
		rec.Saved = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.Error("Error serializing model", err)
		return err
	}
	err = SaveData(s.db, []byte(key), data)
	if err != nil {
		log.Error("Error saving model", err)
		return err
	}
	log.Infof("Model saved as %q", key)
	return nil
}

// Load loads a model record. The model is validated.
func (s *ModelIO) Load(key string) (*Record, error) {
	b, err := LoadData(s.db, []byte(key))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("model %q not found", key)
	}

	var rec Record
	if err = json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	if rec.Model == nil {
		return nil, fmt.Errorf("%w: record %q has no model", aamodel.ErrInvariantViolation, key)
	}
	if err = rec.Model.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Keys returns all the keys in the database in the byte order.
func (s *ModelIO) Keys() (keys []string, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MODELS)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MODELS)
		if err != nil {
			return err
		}

		err = b.Put(key, data)
		return err
	})
	return err
}

// LoadData loads data from bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MODELS)
		if b == nil {
			return nil
		}

		v := b.Get(key)
		if v != nil {
			// v is only valid during the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
