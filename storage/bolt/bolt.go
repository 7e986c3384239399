/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package bolt provides a persistent core.MemoTable for CacheIn,
// backed by bbolt.  One Storage file holds any number of named
// tables, each in its own bucket.  Keys and values are stored as
// JSON, so memoized results survive process restarts.
package bolt

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Comcast/dervish/core"

	bolt "go.etcd.io/bbolt"
)

// Storage owns one bbolt file.
type Storage struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open() error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("bolt.Storage."+format, args...)
	}
}

// Table returns the named core.MemoTable, creating its bucket if
// needed.  The table is safe for concurrent use (bbolt serializes
// writers).
func (s *Storage) Table(name string) (core.MemoTable, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &table{storage: s, name: []byte(name)}, nil
}

// RemTable drops the named table and everything in it.
func (s *Storage) RemTable(name string) error {
	s.logf("RemTable %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.DeleteBucket([]byte(name))
	})
}

type table struct {
	storage *Storage
	name    []byte
}

func (t *table) Load(key interface{}) (interface{}, bool, error) {
	k, err := json.Marshal(&key)
	if err != nil {
		return nil, false, err
	}
	var (
		v    interface{}
		have bool
	)
	err = t.storage.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.name)
		if b == nil {
			return nil
		}
		bs := b.Get(k)
		if bs == nil {
			return nil
		}
		have = true
		return json.Unmarshal(bs, &v)
	})
	t.storage.logf("Load %s %s (%v)", t.name, k, have)
	return v, have, err
}

func (t *table) Store(key, v interface{}) error {
	k, err := json.Marshal(&key)
	if err != nil {
		return err
	}
	bs, err := json.Marshal(&v)
	if err != nil {
		return err
	}
	t.storage.logf("Store %s %s", t.name, k)
	return t.storage.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(t.name)
		if err != nil {
			return err
		}
		return b.Put(k, bs)
	})
}
