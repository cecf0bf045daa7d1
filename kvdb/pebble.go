package kvdb

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

type pebbleStore struct {
	db       *pebble.DB
	path     string
	readOnly bool
	wo       *pebble.WriteOptions
}

func openPebble(path string, o options) (*pebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{ReadOnly: o.readOnly, Logger: nil})
	if err != nil {
		return nil, errors.Wrapf(err, "pebble open %s", path)
	}
	wo := pebble.Sync
	if o.noSync {
		wo = pebble.NoSync
	}
	return &pebbleStore{db: db, path: path, readOnly: o.readOnly, wo: wo}, nil
}

func (s *pebbleStore) Put(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if s.readOnly {
		return ErrReadOnly
	}
	return s.db.Set(key, value, s.wo)
}

func (s *pebbleStore) PutBatch(entries []Entry) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := sortEntries(entries); err != nil {
		return err
	}
	batch := s.db.NewBatch()
	defer batch.Close()
	for _, e := range entries {
		if err := batch.Set(e.Key, e.Value, nil); err != nil {
			return errors.Wrapf(err, "pebble set %q", e.Key)
		}
	}
	return batch.Commit(s.wo)
}

func (s *pebbleStore) Get(key []byte) ([]byte, error) {
	val, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(val), nil
}

func (s *pebbleStore) Scan(prefix []byte, fn func(key, value []byte) error) (err error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, iter.Close())
	}()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (s *pebbleStore) Size() (int64, error) {
	return getDirSize(s.path)
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}
