package kvdb

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

var boltBucket = []byte("results")

type boltStore struct {
	db       *bbolt.DB
	path     string
	readOnly bool
}

func openBolt(path string, o options) (*boltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{ReadOnly: o.readOnly, NoSync: o.noSync})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt open %s", path)
	}
	if !o.readOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(boltBucket)
			return err
		})
		if err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "bbolt bucket")
		}
	}
	return &boltStore{db: db, path: path, readOnly: o.readOnly}, nil
}

func (s *boltStore) Put(key, value []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if s.readOnly {
		return ErrReadOnly
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, value)
	})
}

func (s *boltStore) PutBatch(entries []Entry) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := sortEntries(entries); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		// 키가 오름차순이면 페이지를 꽉 채워도 분할이 거의 없다.
		b.FillPercent = 0.9
		for _, e := range entries {
			if err := b.Put(e.Key, e.Value); err != nil {
				return errors.Wrapf(err, "bbolt put %q", e.Key)
			}
		}
		return nil
	})
}

func (s *boltStore) Get(key []byte) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(key)
		if v == nil {
			return ErrNotFound
		}
		// 트랜잭션 밖에서는 mmap 영역이 무효다.
		out = bytes.Clone(v)
		return nil
	})
	return out, err
}

func (s *boltStore) Scan(prefix []byte, fn func(key, value []byte) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		k, v := c.First()
		if len(prefix) > 0 {
			k, v = c.Seek(prefix)
		}
		for ; k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if err := fn(k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltStore) Size() (int64, error) {
	return getDirSize(s.path)
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
