package kvdb

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T, kind Kind) string {
	t.Helper()
	dir := t.TempDir()
	if kind == Bbolt {
		return filepath.Join(dir, "results.db")
	}
	return filepath.Join(dir, string(kind))
}

func openTestStore(t *testing.T, kind Kind) (Store, string) {
	t.Helper()
	path := storePath(t, kind)
	s, err := Open(kind, path, NoSync())
	require.NoError(t, err)
	return s, path
}

func TestStorePutGet(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			s, _ := openTestStore(t, kind)
			defer s.Close()

			require.NoError(t, s.Put([]byte("a"), []byte("1")))
			require.NoError(t, s.Put([]byte("a"), []byte("2")))

			v, err := s.Get([]byte("a"))
			require.NoError(t, err)
			require.Equal(t, []byte("2"), v)

			_, err = s.Get([]byte("missing"))
			require.True(t, errors.Is(err, ErrNotFound), "got %v", err)

			require.ErrorIs(t, s.Put(nil, []byte("x")), ErrEmptyKey)
		})
	}
}

func TestStoreBatchScanOrdered(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			s, _ := openTestStore(t, kind)
			defer s.Close()

			// 일부러 역순으로 넣는다.
			var entries []Entry
			for i := 99; i >= 0; i-- {
				group := "even"
				if i%2 == 1 {
					group = "odd"
				}
				entries = append(entries, Entry{
					Key:   []byte(fmt.Sprintf("%s/%03d", group, i)),
					Value: []byte(fmt.Sprint(i)),
				})
			}
			require.NoError(t, s.PutBatch(entries))

			var keys []string
			require.NoError(t, s.Scan([]byte("odd/"), func(k, v []byte) error {
				keys = append(keys, string(k))
				return nil
			}))
			require.Len(t, keys, 50)
			require.Equal(t, "odd/001", keys[0])
			require.Equal(t, "odd/099", keys[49])
			require.IsIncreasing(t, keys)

			var all int
			require.NoError(t, s.Scan(nil, func(k, v []byte) error {
				all++
				return nil
			}))
			require.Equal(t, 100, all)

			v, err := s.Get([]byte("even/042"))
			require.NoError(t, err)
			require.Equal(t, []byte("42"), v)
		})
	}
}

func TestStoreScanStopsOnError(t *testing.T) {
	stop := errors.New("stop")
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			s, _ := openTestStore(t, kind)
			defer s.Close()

			require.NoError(t, s.PutBatch([]Entry{
				{Key: []byte("k1"), Value: []byte("v")},
				{Key: []byte("k2"), Value: []byte("v")},
				{Key: []byte("k3"), Value: []byte("v")},
			}))

			seen := 0
			err := s.Scan([]byte("k"), func(k, v []byte) error {
				seen++
				if seen == 2 {
					return stop
				}
				return nil
			})
			require.ErrorIs(t, err, stop)
			require.Equal(t, 2, seen)
		})
	}
}

func TestStoreReopenReadOnly(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			s, path := openTestStore(t, kind)
			require.NoError(t, s.Put([]byte("key"), []byte("value")))
			require.NoError(t, s.Close())

			ro, err := Open(kind, path, ReadOnly())
			require.NoError(t, err)
			defer ro.Close()

			v, err := ro.Get([]byte("key"))
			require.NoError(t, err)
			require.Equal(t, []byte("value"), v)

			require.ErrorIs(t, ro.Put([]byte("other"), []byte("x")), ErrReadOnly)
			require.ErrorIs(t, ro.PutBatch([]Entry{{Key: []byte("x")}}), ErrReadOnly)

			size, err := ro.Size()
			require.NoError(t, err)
			require.Positive(t, size)
		})
	}
}

func TestPutBatchRejectsEmptyKey(t *testing.T) {
	s, _ := openTestStore(t, Bbolt)
	defer s.Close()

	err := s.PutBatch([]Entry{{Key: []byte("a")}, {Key: nil}})
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		got, err := ParseKind(string(kind))
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}

	_, err := ParseKind("leveldb")
	require.True(t, errors.Is(err, ErrUnknownKind))

	_, err = Open("leveldb", t.TempDir())
	require.True(t, errors.Is(err, ErrUnknownKind))
}

func TestPrefixEnd(t *testing.T) {
	tests := []struct {
		prefix []byte
		want   []byte
	}{
		{nil, nil},
		{[]byte("a"), []byte("b")},
		{[]byte("ab"), []byte("ac")},
		{[]byte{'a', 0xff}, []byte("b")},
		{[]byte{0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, prefixEnd(tt.prefix), "prefix %q", tt.prefix)
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Key: []byte("c")},
		{Key: []byte("a")},
		{Key: []byte("b")},
	}
	require.NoError(t, sortEntries(entries))
	require.Equal(t, []byte("a"), entries[0].Key)
	require.Equal(t, []byte("b"), entries[1].Key)
	require.Equal(t, []byte("c"), entries[2].Key)
}
