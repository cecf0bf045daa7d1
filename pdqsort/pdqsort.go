package pdqsort

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

const (
	// 이보다 짧은 범위는 삽입정렬
	insertionSortThreshold = 24
	// 이보다 긴 범위는 ninther로 피벗 선택
	nintherThreshold = 128
	// 부분 삽입정렬이 허용하는 총 이동 수
	partialInsertionSortLimit = 8
)

// driver 한 번의 최상위 호출 동안만 사는 정렬 상태. 호출 사이에 공유되지 않는다.
type driver[S sequence] struct {
	s     S
	stats *Stats
}

// Sort x를 오름차순으로 제자리 정렬한다. 안정 정렬이 아니다.
// 부동소수점 NaN은 전순서를 깨므로 결과 순서가 정의되지 않는다.
func Sort[T constraints.Ordered](x []T, opts ...Option) {
	_ = run(&orderedSeq[T]{x: x}, len(x), newConfig(opts))
}

// SortFunc cmp 순서(음수: a < b)로 x를 제자리 정렬한다. cmp가 nil이면 즉시 패닉.
func SortFunc[T any](x []T, cmp func(a, b T) int, opts ...Option) {
	if cmp == nil {
		panic(ErrNilComparator)
	}
	_ = run(&funcSeq[T]{x: x, cmp: cmp}, len(x), newConfig(opts))
}

// SortBytes buf를 stride 바이트 레코드의 연속으로 보고 cmp 순서로 제자리 정렬한다.
// 폴백 임시 레코드 할당이 실패하면 ErrAllocFailed로 표시된 오류를 돌려준다.
func SortBytes(buf []byte, stride int, cmp func(a, b []byte) int, opts ...Option) error {
	v, err := NewView(buf, stride)
	if err != nil {
		return err
	}
	return SortView(v, cmp, opts...)
}

// SortView v의 레코드를 cmp 순서로 제자리 정렬한다.
func SortView(v View, cmp func(a, b []byte) int, opts ...Option) error {
	if cmp == nil {
		return ErrNilComparator
	}
	cfg := newConfig(opts)
	return run(&viewSeq{v: v, cmp: cmp, alloc: cfg.alloc}, v.Len(), cfg)
}

// HeapSort 폴백 힙정렬만으로 x를 정렬한다. 비교용.
func HeapSort[T constraints.Ordered](x []T, opts ...Option) {
	_ = runHeap(&orderedSeq[T]{x: x}, len(x), newConfig(opts))
}

// HeapSortFunc HeapSort의 비교 함수 버전
func HeapSortFunc[T any](x []T, cmp func(a, b T) int, opts ...Option) {
	if cmp == nil {
		panic(ErrNilComparator)
	}
	_ = runHeap(&funcSeq[T]{x: x, cmp: cmp}, len(x), newConfig(opts))
}

// HeapSortBytes HeapSort의 바이트 레코드 버전
func HeapSortBytes(buf []byte, stride int, cmp func(a, b []byte) int, opts ...Option) error {
	if cmp == nil {
		return ErrNilComparator
	}
	v, err := NewView(buf, stride)
	if err != nil {
		return err
	}
	cfg := newConfig(opts)
	return runHeap(&viewSeq{v: v, cmp: cmp, alloc: cfg.alloc}, v.Len(), cfg)
}

func run[S sequence](s S, n int, cfg config) error {
	if n < 2 {
		return nil
	}
	budget := bits.Len(uint(n)) - 1
	if cfg.stats != nil {
		d := &driver[*countingSeq[S]]{s: &countingSeq[S]{s: s, st: cfg.stats}, stats: cfg.stats}
		return d.loop(0, n, budget, true)
	}
	d := &driver[S]{s: s}
	return d.loop(0, n, budget, true)
}

func runHeap[S sequence](s S, n int, cfg config) error {
	if cfg.stats != nil {
		d := &driver[*countingSeq[S]]{s: &countingSeq[S]{s: s, st: cfg.stats}, stats: cfg.stats}
		return d.heapSort(0, n)
	}
	d := &driver[S]{s: s}
	return d.heapSort(0, n)
}

// loop [begin, end)를 정렬한다. 왼쪽은 재귀, 오른쪽은 반복으로 처리한다.
// budget은 남은 심한 불균형 분할 허용 수이고, leftmost는 begin 왼쪽에 센티널이 없음을 뜻한다.
func (d *driver[S]) loop(begin, end, budget int, leftmost bool) error {
	for {
		size := end - begin

		if size < insertionSortThreshold {
			if d.stats != nil {
				d.stats.InsertionSorts++
			}
			if leftmost {
				d.insertionSort(begin, end)
			} else {
				d.unguardedInsertionSort(begin, end)
			}
			return nil
		}

		d.choosePivot(begin, end)

		// 피벗이 직전 피벗과 같으면 같은 값의 연속이다. 흡수하고 그 뒤부터 계속한다.
		if !leftmost && !d.s.less(begin-1, begin) {
			if d.stats != nil {
				d.stats.DuplicateRuns++
			}
			begin = d.partitionLeft(begin, end) + 1
			continue
		}

		pivot, alreadyPartitioned := d.partitionRight(begin, end)
		if d.stats != nil {
			d.stats.Partitions++
			if alreadyPartitioned {
				d.stats.AlreadyPartitioned++
			}
		}

		lSize := pivot - begin
		rSize := end - (pivot + 1)
		highlyUnbalanced := lSize < size/8 || rSize < size/8

		if highlyUnbalanced {
			if d.stats != nil {
				d.stats.UnbalancedPartitions++
			}
			budget--
			if budget == 0 {
				if d.stats != nil {
					d.stats.HeapFallbacks++
				}
				return d.heapSort(begin, end)
			}
			d.breakPatterns(begin, pivot, end, lSize, rSize)
		} else if alreadyPartitioned &&
			d.partialInsertionSort(begin, pivot) &&
			d.partialInsertionSort(pivot+1, end) {
			if d.stats != nil {
				d.stats.FastExits++
			}
			return nil
		}

		if err := d.loop(begin, pivot, budget, leftmost); err != nil {
			return err
		}
		begin = pivot + 1
		leftmost = false
	}
}

// breakPatterns 불균형 분할 뒤 양쪽 경계 원소를 1/4 지점 원소와 바꿔
// 같은 불균형을 반복해서 만드는 입력 패턴을 흐트러뜨린다.
func (d *driver[S]) breakPatterns(begin, pivot, end, lSize, rSize int) {
	if lSize >= insertionSortThreshold {
		q := lSize / 4
		d.s.swap(begin, begin+q)
		d.s.swap(pivot-1, pivot-q)
		if lSize > nintherThreshold {
			d.s.swap(begin+1, begin+(q+1))
			d.s.swap(begin+2, begin+(q+2))
			d.s.swap(pivot-2, pivot-(q+1))
			d.s.swap(pivot-3, pivot-(q+2))
		}
	}
	if rSize >= insertionSortThreshold {
		q := rSize / 4
		d.s.swap(pivot+1, pivot+(1+q))
		d.s.swap(end-1, end-q)
		if rSize > nintherThreshold {
			d.s.swap(pivot+2, pivot+(2+q))
			d.s.swap(pivot+3, pivot+(3+q))
			d.s.swap(end-2, end-(1+q))
			d.s.swap(end-3, end-(2+q))
		}
	}
}
