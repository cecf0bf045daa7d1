package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	psort "github.com/exascience/pargo/sort"

	"github.com/rlaau/ksort/pdqsort"
)

const (
	storageMemory = "memory"
	storageFile   = "file"
)

var storageNames = map[string]string{
	storageMemory: "인메모리",
	storageFile:   "파일",
}

// BenchmarkResult 벤치마크 결과를 저장하는 구조체
type BenchmarkResult struct {
	Pattern      string        `json:"pattern"`
	Algorithm    string        `json:"algorithm"`
	DataSize     int           `json:"data_size"`
	StorageType  string        `json:"storage_type"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	CPUUsage     float64       `json:"cpu_usage_percent"`
	GoroutineNum int           `json:"goroutine_num"`
	Comparisons  int64         `json:"comparisons,omitempty"`
	Swaps        int64         `json:"swaps,omitempty"`
	Verified     bool          `json:"verified"`
	Error        string        `json:"error,omitempty"`
}

// SystemStats 시스템 통계를 위한 구조체
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

var errVerifyFailed = errors.New("정렬 결과 검증 실패")

// writeDataToFile 한 줄에 하나씩 10진수로 쓴다 (64KB 버퍼)
func writeDataToFile(data []uint64, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "파일 생성 %s", filename)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 64*1024)

	// 문자열 빌더 사용으로 메모리 할당 최적화
	var builder strings.Builder
	builder.Grow(10000 * 21)

	for i, num := range data {
		builder.WriteString(strconv.FormatUint(num, 10))
		builder.WriteByte('\n')

		// 주기적으로 플러시 (메모리 사용량 제어)
		if i%10000 == 9999 {
			if _, err := writer.WriteString(builder.String()); err != nil {
				return errors.Wrapf(err, "파일 쓰기 %s", filename)
			}
			builder.Reset()
		}
	}

	if builder.Len() > 0 {
		if _, err := writer.WriteString(builder.String()); err != nil {
			return errors.Wrapf(err, "파일 쓰기 %s", filename)
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "파일 쓰기 %s", filename)
	}
	return file.Close()
}

// readDataFromFile writeDataToFile 형식을 읽는다.
func readDataFromFile(filename string) ([]uint64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "파일 열기 %s", filename)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "파일 정보 %s", filename)
	}

	// 대략적인 숫자 개수 추정 (평균 10자리 + 개행)
	data := make([]uint64, 0, fileInfo.Size()/11)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		num, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", filename, line)
		}
		data = append(data, num)
	}

	return data, errors.Wrapf(scanner.Err(), "파일 읽기 %s", filename)
}

// startStats 측정 시작 (GC 두 번으로 이전 실행의 잔여물 정리)
func startStats() *SystemStats {
	runtime.GC()
	runtime.GC()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemStats{
		startTime: time.Now(),
		startMem:  m,
	}
}

// endStats 실행시간, 할당 바이트, 추정 CPU 사용률
func (s *SystemStats) endStats() (time.Duration, uint64, float64) {
	duration := time.Since(s.startTime)

	runtime.GC()
	runtime.ReadMemStats(&s.endMem)

	memUsage := s.endMem.TotalAlloc - s.startMem.TotalAlloc
	if s.endMem.Mallocs > s.startMem.Mallocs {
		// 할당 횟수도 고려
		memUsage += (s.endMem.Mallocs - s.startMem.Mallocs) * 16
	}

	// 실제 CPU 시간이 아니라 고루틴 수 기반 추정치
	cpuUsage := float64(runtime.NumGoroutine()) / float64(runtime.NumCPU()) * 50
	if cpuUsage > 100 {
		cpuUsage = 100
	}

	return duration, memUsage, cpuUsage
}

// safeSort 알고리즘 패닉을 오류로 바꾼다. 한 알고리즘의 실패가 전체 실행을 멈추지 않게 한다.
func safeSort(algo algorithm, data []uint64, st *pdqsort.Stats) (out []uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			resetWorkerPool()
			err = errors.Newf("%s 패닉: %v", algo.name, r)
		}
	}()
	return algo.sort(data, st)
}

// verifySorted 결과가 오름차순이고 reference(입력을 정렬한 것)와 같은 multiset인지 확인한다.
func verifySorted(result, reference []uint64) error {
	if len(result) != len(reference) {
		return errors.Wrapf(errVerifyFailed, "길이 %d, 기대 %d", len(result), len(reference))
	}
	if !psort.IsSorted(pdqSlice(result)) {
		return errors.Wrap(errVerifyFailed, "오름차순이 아님")
	}
	// 둘 다 정렬돼 있으므로 같은 multiset이면 원소별로 같다.
	if i := mismatchIndex(result, reference); i >= 0 {
		return errors.Wrapf(errVerifyFailed, "%d번째 값 %d, 기대 %d", i, result[i], reference[i])
	}
	return nil
}

func mismatchIndex(a, b []uint64) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}

// sortedReference 검증 기준값. 입력을 건드리지 않는다.
func sortedReference(data []uint64) []uint64 {
	ref := slices.Clone(data)
	slices.Sort(ref)
	return ref
}

// runBenchmark 복사본 하나로 algo를 한 번 실행해 측정하고 검증한다.
func runBenchmark(algo algorithm, data, reference []uint64, storage string, collectStats bool) BenchmarkResult {
	result := BenchmarkResult{
		Algorithm:    algo.name,
		DataSize:     len(data),
		StorageType:  storage,
		GoroutineNum: runtime.NumGoroutine(),
	}

	testData := make([]uint64, len(data))
	copy(testData, data)

	var st *pdqsort.Stats
	if collectStats {
		st = &pdqsort.Stats{}
	}

	// 측정 전 시스템 안정화
	runtime.GC()
	time.Sleep(10 * time.Millisecond)

	stats := startStats()
	sorted, err := safeSort(algo, testData, st)
	duration, memUsage, cpuUsage := stats.endStats()

	result.Duration = duration
	result.MemoryUsage = memUsage
	result.CPUUsage = cpuUsage
	if st != nil {
		result.Comparisons = st.Comparisons
		result.Swaps = st.Swaps
	}

	if err == nil {
		err = verifySorted(sorted, reference)
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Verified = true
	return result
}

// selfCheck 시작 시 폴백 힙정렬을 작은 고정 입력으로 확인한다.
func selfCheck() error {
	const n = 10
	a := make([]int, n)
	r := 1
	for i := range a {
		r = (r * 725861) % 6599
		a[i] = r
	}

	pdqsort.HeapSortFunc(a, func(x, y int) int { return x - y })

	if !slices.IsSorted(a) {
		return errors.Newf("자체 점검 실패: %v", a)
	}
	return nil
}

func formatBytes(n uint64) string {
	return fmt.Sprintf("%d bytes", n)
}
