package pdqsort

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// sequence 엔진이 정렬하는 가변 레코드 범위.
// 정렬 루프는 less/swap만 쓰고, hold 이하 메서드는 힙정렬 폴백 전용이다.
type sequence interface {
	less(i, j int) bool
	swap(i, j int)

	// reserve 폴백용 임시 레코드 하나를 준비한다.
	reserve() error
	hold(i int)              // tmp = s[i]
	place(i int)             // s[i] = tmp
	move(dst, src int)       // s[dst] = s[src]
	heldLess(i int) bool     // tmp < s[i]
	lessThanHeld(i int) bool // s[i] < tmp
}

// orderedSeq 순서 타입 슬라이스. 비교는 < 연산자.
type orderedSeq[T constraints.Ordered] struct {
	x   []T
	tmp T
}

func (s *orderedSeq[T]) less(i, j int) bool { return s.x[i] < s.x[j] }
func (s *orderedSeq[T]) swap(i, j int) { s.x[i], s.x[j] = s.x[j], s.x[i] }
func (s *orderedSeq[T]) reserve() error { return nil }
func (s *orderedSeq[T]) hold(i int) { s.tmp = s.x[i] }
func (s *orderedSeq[T]) place(i int) { s.x[i] = s.tmp }
func (s *orderedSeq[T]) move(dst, src int) { s.x[dst] = s.x[src] }
func (s *orderedSeq[T]) heldLess(i int) bool { return s.tmp < s.x[i] }
func (s *orderedSeq[T]) lessThanHeld(i int) bool { return s.x[i] < s.tmp }

// funcSeq 임의 타입 슬라이스 + 3-way 비교 함수
type funcSeq[T any] struct {
	x   []T
	cmp func(a, b T) int
	tmp T
}

func (s *funcSeq[T]) less(i, j int) bool { return s.cmp(s.x[i], s.x[j]) < 0 }
func (s *funcSeq[T]) swap(i, j int) { s.x[i], s.x[j] = s.x[j], s.x[i] }
func (s *funcSeq[T]) reserve() error { return nil }
func (s *funcSeq[T]) hold(i int) { s.tmp = s.x[i] }
func (s *funcSeq[T]) place(i int) { s.x[i] = s.tmp }
func (s *funcSeq[T]) move(dst, src int) { s.x[dst] = s.x[src] }
func (s *funcSeq[T]) heldLess(i int) bool { return s.cmp(s.tmp, s.x[i]) < 0 }
func (s *funcSeq[T]) lessThanHeld(i int) bool { return s.cmp(s.x[i], s.tmp) < 0 }

// viewSeq stride 바이트 레코드 뷰 + 바이트 비교 함수.
// 임시 레코드는 폴백에 들어갈 때만 할당한다.
type viewSeq struct {
	v     View
	cmp   func(a, b []byte) int
	alloc Allocator
	tmp   []byte
}

func (s *viewSeq) less(i, j int) bool { return s.cmp(s.v.At(i), s.v.At(j)) < 0 }
func (s *viewSeq) swap(i, j int) { s.v.Swap(i, j) }

func (s *viewSeq) reserve() error {
	if s.tmp != nil {
		return nil
	}
	tmp, err := s.alloc(s.v.stride)
	if err != nil {
		return errors.Wrapf(ErrAllocFailed, "%d-byte record: %v", s.v.stride, err)
	}
	if len(tmp) < s.v.stride {
		return errors.Wrapf(ErrAllocFailed, "allocator returned %d bytes, need %d", len(tmp), s.v.stride)
	}
	s.tmp = tmp[:s.v.stride:s.v.stride]
	return nil
}

func (s *viewSeq) hold(i int) { copy(s.tmp, s.v.At(i)) }
func (s *viewSeq) place(i int) { copy(s.v.At(i), s.tmp) }
func (s *viewSeq) move(dst, src int) { copy(s.v.At(dst), s.v.At(src)) }
func (s *viewSeq) heldLess(i int) bool { return s.cmp(s.tmp, s.v.At(i)) < 0 }
func (s *viewSeq) lessThanHeld(i int) bool { return s.cmp(s.v.At(i), s.tmp) < 0 }

// countingSeq 비교/교환/복사 횟수를 세는 래퍼. WithStats일 때만 끼운다.
type countingSeq[S sequence] struct {
	s  S
	st *Stats
}

func (c *countingSeq[S]) less(i, j int) bool {
	c.st.Comparisons++
	return c.s.less(i, j)
}

func (c *countingSeq[S]) swap(i, j int) {
	c.st.Swaps++
	c.s.swap(i, j)
}

func (c *countingSeq[S]) reserve() error { return c.s.reserve() }
func (c *countingSeq[S]) hold(i int) { c.s.hold(i) }

func (c *countingSeq[S]) place(i int) {
	c.st.Moves++
	c.s.place(i)
}

func (c *countingSeq[S]) move(dst, src int) {
	c.st.Moves++
	c.s.move(dst, src)
}

func (c *countingSeq[S]) heldLess(i int) bool {
	c.st.Comparisons++
	return c.s.heldLess(i)
}

func (c *countingSeq[S]) lessThanHeld(i int) bool {
	c.st.Comparisons++
	return c.s.lessThanHeld(i)
}
