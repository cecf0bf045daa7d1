package main

import (
	"bytes"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/rlaau/ksort/kvdb"
	"github.com/rlaau/ksort/pdqsort"
)

const keySize = 20

type BenchmarkResult struct {
	Name                  string
	RandomWriteTime       time.Duration
	SortTime              time.Duration
	SortedWriteTime       time.Duration
	BatchWriteTime        time.Duration
	RandomDBSize          int64
	SortedDBSize          int64
	ScanTime              time.Duration
	RandExistingReadTime  time.Duration
	NonExistentReadTime   time.Duration
	ScannedKeys           int
	MissingExistingLookup int
}

func main() {
	numItems := pflag.Int("items", 100_000, "저장할 키 개수")
	testSize := pflag.Int("reads", 10_000, "임의 읽기 횟수")
	seed := pflag.Int64("seed", 42, "키 생성 시드")
	workDir := pflag.String("dir", "", "저장소를 만들 디렉터리 (기본: 임시 디렉터리)")
	pflag.Parse()

	dir := *workDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "kvdb-bench-")
		if err != nil {
			log.Fatalf("임시 디렉터리 생성 실패: %v", err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}

	// --- 1. 데이터 생성 ---
	fmt.Printf("%d개의 %d바이트 키를 생성합니다...\n", *numItems, keySize)
	rng := rand.New(rand.NewSource(*seed))
	keys := make([]byte, *numItems*keySize)
	rng.Read(keys)

	sorted := bytes.Clone(keys)
	start := time.Now()
	if err := pdqsort.SortBytes(sorted, keySize, bytes.Compare); err != nil {
		log.Fatalf("키 정렬 실패: %v", err)
	}
	sortTime := time.Since(start)

	randKeys := make([][]byte, *testSize)
	missingKeys := make([][]byte, *testSize)
	for i := range randKeys {
		k := rng.Intn(*numItems)
		randKeys[i] = keys[k*keySize : (k+1)*keySize]
		missing := make([]byte, keySize+1) // 길이가 달라 절대 겹치지 않는다
		rng.Read(missing)
		missingKeys[i] = missing
	}

	// --- 2. 벤치마크 실행 ---
	var results []BenchmarkResult
	for _, kind := range kvdb.Kinds {
		fmt.Printf("\n--- %s 벤치마크 시작 ---\n", kind)
		result, err := runStoreBenchmark(kind, filepath.Join(dir, string(kind)), keys, sorted, randKeys, missingKeys)
		if err != nil {
			log.Fatalf("%s 실패: %+v", kind, err)
		}
		result.SortTime = sortTime
		results = append(results, result)
	}

	// --- 3. 결과 출력 ---
	printResults(*numItems, results)
}

// storeName 백엔드 경로. bbolt는 파일 하나, 나머지는 디렉터리.
func storeName(base, suffix string) string {
	return base + "-" + suffix
}

// loadEach 레코드 순서대로 한 건씩 쓴다.
func loadEach(kind kvdb.Kind, path string, buf []byte) (time.Duration, int64, error) {
	start := time.Now()
	s, err := kvdb.Open(kind, path, kvdb.NoSync())
	if err != nil {
		return 0, 0, err
	}
	for off := 0; off < len(buf); off += keySize {
		k := buf[off : off+keySize]
		if err := s.Put(k, k[:8]); err != nil {
			_ = s.Close()
			return 0, 0, errors.Wrapf(err, "put #%d", off/keySize)
		}
	}
	if err := s.Close(); err != nil {
		return 0, 0, err
	}
	elapsed := time.Since(start)

	ro, err := kvdb.Open(kind, path, kvdb.ReadOnly())
	if err != nil {
		return 0, 0, err
	}
	defer ro.Close()
	size, err := ro.Size()
	return elapsed, size, err
}

func runStoreBenchmark(kind kvdb.Kind, base string, keys, sorted []byte, randKeys, missingKeys [][]byte) (BenchmarkResult, error) {
	result := BenchmarkResult{Name: string(kind)}
	var err error

	// 무작위 순서 vs 미리 정렬한 순서
	result.RandomWriteTime, result.RandomDBSize, err = loadEach(kind, storeName(base, "random"), keys)
	if err != nil {
		return result, errors.Wrap(err, "random load")
	}
	result.SortedWriteTime, result.SortedDBSize, err = loadEach(kind, storeName(base, "sorted"), sorted)
	if err != nil {
		return result, errors.Wrap(err, "sorted load")
	}

	// PutBatch는 내부에서 키를 정렬한 뒤 한 번에 쓴다.
	entries := make([]kvdb.Entry, 0, len(keys)/keySize)
	for off := 0; off < len(keys); off += keySize {
		k := keys[off : off+keySize]
		entries = append(entries, kvdb.Entry{Key: k, Value: k[:8]})
	}
	batchPath := storeName(base, "batch")
	start := time.Now()
	s, err := kvdb.Open(kind, batchPath, kvdb.NoSync())
	if err != nil {
		return result, err
	}
	if err := s.PutBatch(entries); err != nil {
		_ = s.Close()
		return result, errors.Wrap(err, "batch load")
	}
	if err := s.Close(); err != nil {
		return result, err
	}
	result.BatchWriteTime = time.Since(start)

	// 읽기는 정렬 적재한 저장소에서
	ro, err := kvdb.Open(kind, batchPath, kvdb.ReadOnly())
	if err != nil {
		return result, err
	}
	defer ro.Close()

	start = time.Now()
	err = ro.Scan(nil, func(k, v []byte) error {
		result.ScannedKeys++
		return nil
	})
	if err != nil {
		return result, errors.Wrap(err, "scan")
	}
	result.ScanTime = time.Since(start)

	start = time.Now()
	for _, key := range randKeys {
		if _, err := ro.Get(key); err != nil {
			if !errors.Is(err, kvdb.ErrNotFound) {
				return result, err
			}
			result.MissingExistingLookup++
		}
	}
	result.RandExistingReadTime = time.Since(start)

	start = time.Now()
	for _, key := range missingKeys {
		if _, err := ro.Get(key); err != nil && !errors.Is(err, kvdb.ErrNotFound) {
			return result, err
		}
	}
	result.NonExistentReadTime = time.Since(start)

	return result, nil
}

func mb(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
}

func printResults(numItems int, results []BenchmarkResult) {
	row := func(label string, cell func(r BenchmarkResult) any) {
		fmt.Printf("%-32s", label)
		for _, r := range results {
			fmt.Printf(" | %-18v", cell(r))
		}
		fmt.Println()
	}

	fmt.Println("\n\n--- 최종 벤치마크 결과 ---")
	fmt.Println("==================================================================================================================")
	row("항목", func(r BenchmarkResult) any { return r.Name })
	fmt.Println("-------------------------------------- [1. 쓰기 성능] -----------------------------------------------------------")
	row(fmt.Sprintf("무작위 순서 저장 (%d건)", numItems), func(r BenchmarkResult) any { return r.RandomWriteTime.Round(time.Millisecond) })
	row("pdqsort 정렬 시간", func(r BenchmarkResult) any { return r.SortTime.Round(time.Microsecond) })
	row("정렬 순서 저장", func(r BenchmarkResult) any { return r.SortedWriteTime.Round(time.Millisecond) })
	row("배치 저장 (정렬 포함)", func(r BenchmarkResult) any { return r.BatchWriteTime.Round(time.Millisecond) })
	row("저장 공간 (무작위)", func(r BenchmarkResult) any { return mb(r.RandomDBSize) })
	row("저장 공간 (정렬)", func(r BenchmarkResult) any { return mb(r.SortedDBSize) })
	fmt.Println("-------------------------------------- [2. 순차 접근] --------------------------------------------------------------")
	row("전체 스캔", func(r BenchmarkResult) any { return r.ScanTime.Round(time.Microsecond) })
	row("스캔한 키", func(r BenchmarkResult) any { return r.ScannedKeys })
	fmt.Println("-------------------------------------- [3. 임의 접근] --------------------------------------------------------------")
	row("있는 데이터 읽기", func(r BenchmarkResult) any { return r.RandExistingReadTime.Round(time.Microsecond) })
	row("없는 데이터 확인", func(r BenchmarkResult) any { return r.NonExistentReadTime.Round(time.Microsecond) })
	row("못 찾은 키 (0이어야 함)", func(r BenchmarkResult) any { return r.MissingExistingLookup })
	fmt.Println("==================================================================================================================")
}
