package pdqsort

import (
	"cmp"
	"encoding/binary"
	"math/bits"
	"math/rand"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// 테스트 입력 패턴
var patterns = map[string]func(r *rand.Rand, n int) []int{
	"random": func(r *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = r.Intn(1 << 30)
		}
		return x
	},
	"ascending": func(_ *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = i
		}
		return x
	},
	"descending": func(_ *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = n - i
		}
		return x
	},
	"all_equal": func(_ *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = 7
		}
		return x
	},
	"few_unique": func(r *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = r.Intn(4)
		}
		return x
	},
	"mostly_ascending": func(r *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = i
		}
		for k := 0; k < n/50+1 && n > 1; k++ {
			i, j := r.Intn(n), r.Intn(n)
			x[i], x[j] = x[j], x[i]
		}
		return x
	},
	"pipe_organ": func(_ *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			if i < n/2 {
				x[i] = i
			} else {
				x[i] = n - i
			}
		}
		return x
	},
	"sawtooth": func(_ *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = i % 37
		}
		return x
	},
	"ascending_tail": func(r *rand.Rand, n int) []int {
		x := make([]int, n)
		for i := range x {
			x[i] = i
		}
		if n > 0 {
			x[n-1] = r.Intn(n)
		}
		return x
	},
}

var sizes = []int{0, 1, 2, 3, 5, 23, 24, 25, 100, 127, 128, 129, 130, 257, 1000, 4096, 10007}

func TestSortPatterns(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for name, gen := range patterns {
		for _, n := range sizes {
			data := gen(r, n)
			want := slices.Clone(data)
			slices.Sort(want)

			Sort(data)
			// 정렬됨 + 다중집합 보존을 한 번에 확인
			require.Equal(t, want, data, "pattern=%s n=%d", name, n)
		}
	}
}

func TestSortFuncDescending(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	desc := func(a, b int) int { return cmp.Compare(b, a) }
	for name, gen := range patterns {
		for _, n := range sizes {
			data := gen(r, n)
			want := slices.Clone(data)
			slices.SortFunc(want, desc)

			SortFunc(data, desc)
			require.Equal(t, want, data, "pattern=%s n=%d", name, n)
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	data := patterns["random"](r, 5000)
	Sort(data)
	once := slices.Clone(data)

	var st Stats
	Sort(data, WithStats(&st))
	require.Equal(t, once, data)
}

func TestSortBoundaries(t *testing.T) {
	calls := 0
	counting := func(a, b int) int {
		calls++
		return cmp.Compare(a, b)
	}

	var empty []int
	SortFunc(empty, counting)
	require.Empty(t, empty)

	one := []int{42}
	SortFunc(one, counting)
	require.Equal(t, []int{42}, one)
	require.Zero(t, calls)

	var st Stats
	two := []int{2, 1}
	SortFunc(two, counting, WithStats(&st))
	require.Equal(t, []int{1, 2}, two)
	require.EqualValues(t, 1, st.Swaps)
	require.EqualValues(t, calls, st.Comparisons)
}

func TestSortBytesExample(t *testing.T) {
	in := []uint64{5, 3, 8, 3, 9, 1}
	buf := make([]byte, 8*len(in))
	for i, v := range in {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	u64 := func(a, b []byte) int {
		return cmp.Compare(binary.LittleEndian.Uint64(a), binary.LittleEndian.Uint64(b))
	}

	require.NoError(t, SortBytes(buf, 8, u64))

	got := make([]uint64, len(in))
	for i := range got {
		got[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	require.Equal(t, []uint64{1, 3, 3, 5, 8, 9}, got)
}

func TestSortAscendingSmallNoSwaps(t *testing.T) {
	var st Stats
	data := []int{1, 2, 3, 4, 5}
	Sort(data, WithStats(&st))

	require.Equal(t, []int{1, 2, 3, 4, 5}, data)
	require.Zero(t, st.Swaps)
	require.EqualValues(t, 4, st.Comparisons)
	require.Equal(t, 1, st.InsertionSorts)
	require.Zero(t, st.Partitions)
}

func TestSortAscendingFastExit(t *testing.T) {
	var st Stats
	data := patterns["ascending"](nil, 1000)
	Sort(data, WithStats(&st))

	require.True(t, slices.IsSorted(data))
	require.Positive(t, st.FastExits)
	require.Zero(t, st.HeapFallbacks)
	// 이미 정렬된 입력은 선형에 가까워야 한다
	require.Less(t, st.Comparisons, int64(4*len(data)))
}

func TestSortAllEqual(t *testing.T) {
	var st Stats
	data := patterns["all_equal"](nil, 100000)
	Sort(data, WithStats(&st))

	require.True(t, slices.IsSorted(data))
	require.Positive(t, st.DuplicateRuns)
	require.Zero(t, st.HeapFallbacks)
	require.Less(t, st.Comparisons, int64(3*len(data)))
}

func TestSortFuncNilComparator(t *testing.T) {
	require.PanicsWithError(t, ErrNilComparator.Error(), func() {
		SortFunc([]int{2, 1}, nil)
	})
	require.PanicsWithError(t, ErrNilComparator.Error(), func() {
		HeapSortFunc[int](nil, nil)
	})
	require.ErrorIs(t, SortBytes(make([]byte, 16), 8, nil), ErrNilComparator)
	require.ErrorIs(t, HeapSortBytes(make([]byte, 16), 8, nil), ErrNilComparator)
}

// adversary McIlroy의 "A Killer Adversary for Quicksort" 비교 함수.
// 아직 값이 정해지지 않은(gas) 원소를 피벗 후보보다 항상 크게 보이게 해서
// 피벗 선택이 O(1) 비교인 퀵소트를 최악으로 몰아간다.
type adversary struct {
	keys      []int
	gas       int
	candidate int
	nsolid    int
	calls     int64
}

func newAdversary(n int) (*adversary, []int) {
	a := &adversary{keys: make([]int, n), gas: n, candidate: -1}
	ids := make([]int, n)
	for i := range ids {
		a.keys[i] = n
		ids[i] = i
	}
	return a, ids
}

func (a *adversary) compare(x, y int) int {
	a.calls++
	if a.keys[x] == a.gas && a.keys[y] == a.gas {
		if x == a.candidate {
			a.keys[x] = a.nsolid
		} else {
			a.keys[y] = a.nsolid
		}
		a.nsolid++
	}
	if a.keys[x] == a.gas {
		a.candidate = x
	} else if a.keys[y] == a.gas {
		a.candidate = y
	}
	return cmp.Compare(a.keys[x], a.keys[y])
}

func TestSortAdversary(t *testing.T) {
	for _, n := range []int{1000, 10000, 50000} {
		adv, ids := newAdversary(n)
		var st Stats
		SortFunc(ids, adv.compare, WithStats(&st))

		// 정해진 키 기준으로 정렬되어 있어야 한다
		for i := 1; i < n; i++ {
			require.LessOrEqual(t, adv.keys[ids[i-1]], adv.keys[ids[i]], "n=%d i=%d", n, i)
		}
		seen := slices.Clone(ids)
		slices.Sort(seen)
		for i, id := range seen {
			require.Equal(t, i, id)
		}

		require.Positive(t, st.HeapFallbacks, "n=%d", n)
		require.Equal(t, adv.calls, st.Comparisons)
		bound := int64(10 * n * bits.Len(uint(n)))
		require.Less(t, adv.calls, bound, "n=%d", n)
	}
}

func TestSortBytesAllocFailure(t *testing.T) {
	const n = 5000
	adv, ids := newAdversary(n)
	buf := make([]byte, 4*n)
	for i, id := range ids {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(id))
	}
	byID := func(a, b []byte) int {
		return adv.compare(int(binary.BigEndian.Uint32(a)), int(binary.BigEndian.Uint32(b)))
	}
	failing := func(size int) ([]byte, error) {
		return nil, errors.Newf("no memory for %d bytes", size)
	}

	err := SortBytes(buf, 4, byID, WithAllocator(failing))
	require.ErrorIs(t, err, ErrAllocFailed)
	require.Contains(t, err.Error(), "no memory for 4 bytes")

	// 실패해도 레코드는 사라지거나 복제되지 않는다
	got := make([]int, n)
	for i := range got {
		got[i] = int(binary.BigEndian.Uint32(buf[i*4:]))
	}
	slices.Sort(got)
	for i, id := range got {
		require.Equal(t, i, id)
	}
}

func TestHeapSortBytesShortAllocation(t *testing.T) {
	buf := []byte{3, 0, 2, 0, 1, 0}
	short := func(int) ([]byte, error) { return make([]byte, 1), nil }
	err := HeapSortBytes(buf, 2, func(a, b []byte) int { return cmp.Compare(a[0], b[0]) }, WithAllocator(short))
	require.ErrorIs(t, err, ErrAllocFailed)
}

// keyedRecords stride 바이트 레코드마다 앞 4바이트 키와, 나머지에 키에서 유도한 바이트를 채운다.
func keyedRecords(r *rand.Rand, n, stride int) []byte {
	buf := make([]byte, n*stride)
	for i := 0; i < n; i++ {
		rec := buf[i*stride : (i+1)*stride]
		key := uint32(r.Intn(n/3 + 1))
		binary.BigEndian.PutUint32(rec, key)
		for j := 4; j < stride; j++ {
			rec[j] = byte(key*31) + byte(j)
		}
	}
	return buf
}

func TestSortBytesStrides(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	byKey := func(a, b []byte) int {
		return cmp.Compare(binary.BigEndian.Uint32(a), binary.BigEndian.Uint32(b))
	}
	for _, stride := range []int{4, 5, 6, 8, 12, 16, 24, 33} {
		for _, n := range []int{0, 1, 2, 30, 300, 3000} {
			buf := keyedRecords(r, n, stride)
			before := make(map[string]int)
			for i := 0; i < n; i++ {
				before[string(buf[i*stride:(i+1)*stride])]++
			}

			require.NoError(t, SortBytes(buf, stride, byKey), "stride=%d n=%d", stride, n)

			after := make(map[string]int)
			for i := 0; i < n; i++ {
				rec := buf[i*stride : (i+1)*stride]
				after[string(rec)]++
				if i > 0 {
					require.LessOrEqual(t, byKey(buf[(i-1)*stride:i*stride], rec), 0)
				}
			}
			require.Equal(t, before, after, "stride=%d n=%d", stride, n)
		}
	}
}

func TestSortBytesInvalid(t *testing.T) {
	noop := func(a, b []byte) int { return 0 }
	require.ErrorIs(t, SortBytes(make([]byte, 8), 0, noop), ErrInvalidStride)
	require.ErrorIs(t, SortBytes(make([]byte, 8), -4, noop), ErrInvalidStride)
	require.ErrorIs(t, SortBytes(make([]byte, 10), 4, noop), ErrRaggedBuffer)
	require.NoError(t, SortBytes(nil, 0, noop))
}

func TestHeapSort(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for name, gen := range patterns {
		for _, n := range sizes {
			data := gen(r, n)
			want := slices.Clone(data)
			slices.Sort(want)

			HeapSort(data)
			require.Equal(t, want, data, "pattern=%s n=%d", name, n)
		}
	}
}

func TestHeapSortBytes(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	buf := keyedRecords(r, 777, 12)
	byKey := func(a, b []byte) int {
		return cmp.Compare(binary.BigEndian.Uint32(a), binary.BigEndian.Uint32(b))
	}
	var st Stats
	require.NoError(t, HeapSortBytes(buf, 12, byKey, WithStats(&st)))
	for i := 1; i < 777; i++ {
		require.LessOrEqual(t, byKey(buf[(i-1)*12:i*12], buf[i*12:(i+1)*12]), 0)
	}
	require.Positive(t, st.Moves)
	require.Zero(t, st.Swaps)
}

func TestSortDisjointRangesConcurrently(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	data := patterns["random"](r, 40000)
	const parts = 8
	chunk := len(data) / parts

	done := make(chan struct{}, parts)
	for p := 0; p < parts; p++ {
		go func(part []int) {
			Sort(part)
			done <- struct{}{}
		}(data[p*chunk : (p+1)*chunk])
	}
	for p := 0; p < parts; p++ {
		<-done
	}
	for p := 0; p < parts; p++ {
		require.True(t, slices.IsSorted(data[p*chunk:(p+1)*chunk]))
	}
}
