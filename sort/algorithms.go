package main

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/cockroachdb/errors"
	psort "github.com/exascience/pargo/sort"

	"github.com/rlaau/ksort/pdqsort"
)

// 비교 대상 알고리즘 이름
const (
	algoPdqsort           = "pdqsort"
	algoPdqsortBytes      = "pdqsort_bytes"
	algoHeapsort          = "heapsort"
	algoQuicksort         = "quicksort"
	algoParallelQuicksort = "parallel_quicksort"
	algoMergesort         = "mergesort"
	algoParallelMergesort = "parallel_mergesort"
	algoParallelPdqsort   = "parallel_pdqsort"
	algoStdlibSort        = "stdlib_sort"
)

// uint64Size pdqsort_bytes 레코드 크기
const uint64Size = 8

// sortFunc data를 정렬한 결과를 돌려준다. 제자리 정렬이면 data 자체를 돌려준다.
// st가 nil이 아니면 pdqsort 계열은 내부 카운터를 채운다.
type sortFunc func(data []uint64, st *pdqsort.Stats) ([]uint64, error)

type algorithm struct {
	name  string
	label string
	sort  sortFunc
}

var algorithms = []algorithm{
	{algoPdqsort, "pdqsort", sortPdq},
	{algoPdqsortBytes, "pdqsort(바이트)", sortPdqBytes},
	{algoHeapsort, "힙소트", sortHeap},
	{algoQuicksort, "퀵소트", func(data []uint64, _ *pdqsort.Stats) ([]uint64, error) {
		quickSort(data)
		return data, nil
	}},
	{algoParallelQuicksort, "병렬퀵소트", func(data []uint64, _ *pdqsort.Stats) ([]uint64, error) {
		safeParallelQuickSort(data)
		return data, nil
	}},
	{algoMergesort, "머지소트", func(data []uint64, _ *pdqsort.Stats) ([]uint64, error) {
		return mergeSort(data), nil
	}},
	{algoParallelMergesort, "병렬머지소트", func(data []uint64, _ *pdqsort.Stats) ([]uint64, error) {
		return safeParallelMergeSort(data), nil
	}},
	{algoParallelPdqsort, "병렬pdqsort", func(data []uint64, _ *pdqsort.Stats) ([]uint64, error) {
		psort.Sort(pdqSlice(data))
		return data, nil
	}},
	{algoStdlibSort, "표준정렬", func(data []uint64, _ *pdqsort.Stats) ([]uint64, error) {
		slices.Sort(data)
		return data, nil
	}},
}

var errUnknownAlgorithm = errors.New("알 수 없는 알고리즘")

// lookupAlgorithms 이름 목록을 등록된 알고리즘으로 바꾼다. 순서는 입력 순서.
func lookupAlgorithms(names []string) ([]algorithm, error) {
	out := make([]algorithm, 0, len(names))
	for _, name := range names {
		idx := slices.IndexFunc(algorithms, func(a algorithm) bool { return a.name == name })
		if idx < 0 {
			return nil, errors.Wrapf(errUnknownAlgorithm, "%q", name)
		}
		out = append(out, algorithms[idx])
	}
	return out, nil
}

func algorithmNames() []string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = a.name
	}
	return names
}

func statsOption(st *pdqsort.Stats) []pdqsort.Option {
	if st == nil {
		return nil
	}
	return []pdqsort.Option{pdqsort.WithStats(st)}
}

func sortPdq(data []uint64, st *pdqsort.Stats) ([]uint64, error) {
	pdqsort.Sort(data, statsOption(st)...)
	return data, nil
}

func sortHeap(data []uint64, st *pdqsort.Stats) ([]uint64, error) {
	pdqsort.HeapSort(data, statsOption(st)...)
	return data, nil
}

// sortPdqBytes 값을 빅엔디언 8바이트 레코드로 펼쳐 바이트 뷰 경로로 정렬한다.
// 빅엔디언이라 bytes.Compare 순서가 수 순서와 같다. 인코딩 시간도 측정에 포함된다.
func sortPdqBytes(data []uint64, st *pdqsort.Stats) ([]uint64, error) {
	buf := encodeRecords(data)
	if err := pdqsort.SortBytes(buf, uint64Size, bytes.Compare, statsOption(st)...); err != nil {
		return nil, errors.Wrap(err, "pdqsort_bytes")
	}
	decodeRecords(buf, data)
	return data, nil
}

func encodeRecords(data []uint64) []byte {
	buf := make([]byte, len(data)*uint64Size)
	for i, v := range data {
		binary.BigEndian.PutUint64(buf[i*uint64Size:], v)
	}
	return buf
}

func decodeRecords(buf []byte, dst []uint64) {
	for i := range dst {
		dst[i] = binary.BigEndian.Uint64(buf[i*uint64Size:])
	}
}

// pdqSlice pargo 병렬 퀵소트용 어댑터. 잘게 나뉜 구간은 pdqsort가 맡는다.
type pdqSlice []uint64

func (s pdqSlice) SequentialSort(i, j int) { pdqsort.Sort(s[i:j]) }
func (s pdqSlice) Len() int { return len(s) }
func (s pdqSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s pdqSlice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
