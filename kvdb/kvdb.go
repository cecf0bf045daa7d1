// Package kvdb 벤치마크 결과를 담는 키/값 저장소.
// bbolt, BadgerDB, Pebble을 같은 Store 인터페이스 뒤에 둔다.
package kvdb

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/ksort/pdqsort"
)

// Kind 저장소 백엔드 종류
type Kind string

const (
	Bbolt  Kind = "bbolt"
	Badger Kind = "badger"
	Pebble Kind = "pebble"
)

// Kinds 지원하는 백엔드 전부
var Kinds = []Kind{Bbolt, Badger, Pebble}

var (
	ErrNotFound    = errors.New("kvdb: key not found")
	ErrUnknownKind = errors.New("kvdb: unknown store kind")
	ErrEmptyKey    = errors.New("kvdb: empty key")
	ErrReadOnly    = errors.New("kvdb: store is read-only")
)

// Entry 키/값 한 쌍
type Entry struct {
	Key   []byte
	Value []byte
}

// Store 백엔드 공통 인터페이스.
// Scan 콜백에 넘어가는 슬라이스는 콜백 안에서만 유효하다.
type Store interface {
	Put(key, value []byte) error
	// PutBatch 키 순으로 정렬한 뒤 한 번에 쓴다. entries의 순서가 바뀐다.
	PutBatch(entries []Entry) error
	Get(key []byte) ([]byte, error)
	// Scan prefix로 시작하는 키를 오름차순으로 돈다. fn이 오류를 내면 멈추고 그 오류를 돌려준다.
	Scan(prefix []byte, fn func(key, value []byte) error) error
	// Size 디스크 사용량 (바이트)
	Size() (int64, error)
	Close() error
}

type options struct {
	readOnly bool
	noSync   bool
}

// Option Open 설정
type Option func(*options)

// ReadOnly 읽기 전용으로 연다. 쓰기는 ErrReadOnly.
func ReadOnly() Option {
	return func(o *options) { o.readOnly = true }
}

// NoSync 쓰기마다 fsync하지 않는다.
func NoSync() Option {
	return func(o *options) { o.noSync = true }
}

// ParseKind 문자열을 Kind로 바꾼다.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", s)
}

// Open path에 kind 백엔드를 연다. bbolt는 파일, 나머지는 디렉터리를 쓴다.
func Open(kind Kind, path string, opts ...Option) (Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case Bbolt:
		return openBolt(path, o)
	case Badger:
		return openBadger(path, o)
	case Pebble:
		return openPebble(path, o)
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
}

// sortEntries 키 오름차순 정렬. B+트리와 LSM 모두 정렬된 적재가 빠르다.
func sortEntries(entries []Entry) error {
	for _, e := range entries {
		if len(e.Key) == 0 {
			return ErrEmptyKey
		}
	}
	pdqsort.SortFunc(entries, func(a, b Entry) int {
		return bytes.Compare(a.Key, b.Key)
	})
	return nil
}

// prefixEnd prefix로 시작하는 모든 키보다 큰 가장 작은 키. 없으면 nil.
func prefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// getDirSize path 아래 일반 파일 크기 합
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, errors.Wrapf(err, "size of %s", path)
}
