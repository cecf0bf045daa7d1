package kvdb

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

type badgerStore struct {
	db       *badger.DB
	path     string
	readOnly bool
}

func openBadger(path string, o options) (*badgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithReadOnly(o.readOnly).
		WithSyncWrites(!o.noSync)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "badger open %s", path)
	}
	return &badgerStore{db: db, path: path, readOnly: o.readOnly}, nil
}

func (s *badgerStore) Put(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if s.readOnly {
		return ErrReadOnly
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *badgerStore) PutBatch(entries []Entry) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := sortEntries(entries); err != nil {
		return err
	}
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, e := range entries {
		if err := wb.Set(e.Key, e.Value); err != nil {
			return errors.Wrapf(err, "badger set %q", e.Key)
		}
	}
	return errors.Wrap(wb.Flush(), "badger flush")
}

func (s *badgerStore) Get(key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

func (s *badgerStore) Scan(prefix []byte, fn func(key, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.Prefix = prefix
		it := txn.NewIterator(itOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				return fn(item.Key(), v)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *badgerStore) Size() (int64, error) {
	return getDirSize(s.path)
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
