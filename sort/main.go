package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rlaau/ksort/kvdb"
)

type benchConfig struct {
	sizes       []int
	runs        int
	patterns    []string
	algorithms  []string
	fileMinSize int
	threshold   float64
	seed0       uint64
	seed1       uint64
	stores      []string
	storeDir    string
	outDir      string
	runID       string
	stats       bool
	settle      time.Duration
}

func defaultConfig() benchConfig {
	return benchConfig{
		sizes:       []int{1000, 10000, 100000},
		runs:        3,
		patterns:    slices.Clone(allPatterns),
		algorithms:  algorithmNames(),
		fileMinSize: 100000,
		threshold:   1,
		seed0:       defaultSeed0,
		seed1:       defaultSeed1,
		storeDir:    "results",
		outDir:      ".",
		settle:      50 * time.Millisecond,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:          "ksort-bench",
		Short:        "정렬 알고리즘 벤치마크",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&cfg.sizes, "sizes", cfg.sizes, "데이터 크기 목록")
	f.IntVar(&cfg.runs, "runs", cfg.runs, "크기/패턴마다 반복 횟수")
	f.StringSliceVar(&cfg.patterns, "patterns", cfg.patterns, "입력 패턴 목록")
	f.StringSliceVar(&cfg.algorithms, "algorithms", cfg.algorithms, "비교할 알고리즘 목록")
	f.IntVar(&cfg.fileMinSize, "file-min-size", cfg.fileMinSize, "이 크기 이상은 파일을 거쳐 읽는다 (0이면 끔)")
	f.Float64Var(&cfg.threshold, "outlier-threshold", cfg.threshold, "이상치 z 점수 기준")
	f.Uint64Var(&cfg.seed0, "seed0", cfg.seed0, "xoroshiro128+ 시드 0")
	f.Uint64Var(&cfg.seed1, "seed1", cfg.seed1, "xoroshiro128+ 시드 1")
	f.StringSliceVar(&cfg.stores, "store", nil, "결과를 저장할 저장소 (bbolt, badger, pebble)")
	f.StringVar(&cfg.storeDir, "store-dir", cfg.storeDir, "저장소 디렉터리")
	f.StringVar(&cfg.outDir, "out-dir", cfg.outDir, "보고서 디렉터리")
	f.StringVar(&cfg.runID, "run-id", "", "저장 키 접두사 (기본: 시작 시각)")
	f.BoolVar(&cfg.stats, "stats", false, "pdqsort 계열의 비교/교환 횟수 수집 (측정 시간에 영향)")
	f.DurationVar(&cfg.settle, "settle", cfg.settle, "실행 사이 안정화 대기")

	cmd.AddCommand(newOutlierCmd(), newHistoryCmd())
	return cmd
}

// newOutlierCmd 원시 행렬 파일 하나에 이상치 필터를 적용해 열 평균을 출력하고 파일을 덮어쓴다.
func newOutlierCmd() *cobra.Command {
	threshold := 1.0
	cmd := &cobra.Command{
		Use:   "outlier <raw-file>",
		Short: "원시 행렬 파일의 이상치 제거",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			matrix, err := readRawMatrix(path)
			if err != nil {
				return err
			}
			if len(matrix) == 0 {
				return errors.Newf("%s: 빈 행렬", path)
			}
			filtered, means, replaced := filterOutliers(matrix, threshold)
			for _, m := range means {
				fmt.Printf("%.0f\n", m)
			}
			fmt.Printf("이상치 %d개를 열 평균으로 바꿨습니다.\n", replaced)

			header, err := rawHeader(path)
			if err != nil {
				return err
			}
			return writeMatrix(path, header, filtered)
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", threshold, "이상치 z 점수 기준")
	return cmd
}

// newHistoryCmd 저장소에 남긴 실행 결과를 다시 읽어 출력한다.
func newHistoryCmd() *cobra.Command {
	var (
		store    = string(kvdb.Bbolt)
		storeDir = "results"
		runID    string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "저장된 벤치마크 결과 조회",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kvdb.ParseKind(store)
			if err != nil {
				return err
			}
			results, err := loadResults(storeDir, kind, runID)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d건\n", runID, len(results))
			for _, r := range results {
				fmt.Printf("  %-16s %8d %-6s %-20s #%d %12v %s\n",
					r.Pattern, r.DataSize, r.StorageType, r.Algorithm, r.TestRun, r.Duration, verifyMark(r))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&store, "store", store, "저장소 종류")
	f.StringVar(&storeDir, "store-dir", storeDir, "저장소 디렉터리")
	f.StringVar(&runID, "run-id", "", "조회할 실행 ID")
	_ = cmd.MarkFlagRequired("run-id")
	return cmd
}

func (cfg benchConfig) validate() ([]algorithm, []kvdb.Kind, error) {
	if cfg.runs < 1 {
		return nil, nil, errors.Newf("runs는 1 이상이어야 합니다: %d", cfg.runs)
	}
	for _, size := range cfg.sizes {
		if size < 0 {
			return nil, nil, errors.Newf("잘못된 크기: %d", size)
		}
	}
	for _, p := range cfg.patterns {
		if !slices.Contains(allPatterns, p) {
			return nil, nil, errors.Wrapf(errUnknownPattern, "%q", p)
		}
	}
	algos, err := lookupAlgorithms(cfg.algorithms)
	if err != nil {
		return nil, nil, err
	}
	kinds := make([]kvdb.Kind, 0, len(cfg.stores))
	for _, s := range cfg.stores {
		kind, err := kvdb.ParseKind(s)
		if err != nil {
			return nil, nil, err
		}
		kinds = append(kinds, kind)
	}
	return algos, kinds, nil
}

// benchmarkAll 크기 x 패턴마다 입력을 한 번 만들고 runs번 모든 알고리즘을 돌린다.
// 입력마다 생성기를 한 번 jump해서 서로 겹치지 않는 수열을 쓴다.
func benchmarkAll(cfg benchConfig, algos []algorithm) ([]BenchmarkResult, error) {
	rng := newXoroshiro(cfg.seed0, cfg.seed1)
	var allResults []BenchmarkResult

	for _, size := range cfg.sizes {
		for _, pattern := range cfg.patterns {
			rng.Jump()
			data, err := generateData(rng, pattern, size)
			if err != nil {
				return nil, err
			}
			reference := sortedReference(data)

			storage := storageMemory
			filename := ""
			if cfg.fileMinSize > 0 && size >= cfg.fileMinSize {
				storage = storageFile
				filename = filepath.Join(cfg.outDir, fmt.Sprintf("test_data_%s_%d.txt", pattern, size))
				if err := writeDataToFile(data, filename); err != nil {
					return nil, err
				}
			}

			fmt.Printf("%s %d개 데이터 (%s) 테스트 중...\n", patternNames[pattern], size, storageNames[storage])

			for run := 1; run <= cfg.runs; run++ {
				for _, algo := range algos {
					input := data
					if filename != "" {
						// 매번 파일에서 읽기
						input, err = readDataFromFile(filename)
						if err != nil {
							_ = os.Remove(filename)
							return nil, err
						}
					}

					result := runBenchmark(algo, input, reference, storage, cfg.stats)
					result.Pattern = pattern
					result.TestRun = run
					allResults = append(allResults, result)

					status := ""
					if !result.Verified {
						status = " 검증 실패: " + result.Error
					}
					fmt.Printf("  %s - 테스트 %d: %v%s\n", algo.name, run, result.Duration, status)
					time.Sleep(cfg.settle)
				}
			}

			if filename != "" {
				_ = os.Remove(filename)
			}
		}
	}
	return allResults, nil
}

func runBench(ctx context.Context, cfg benchConfig) error {
	algos, kinds, err := cfg.validate()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Println("정렬 알고리즘 벤치마크 시작...")
	fmt.Printf("CPU 코어 수: %d\n", runtime.NumCPU())
	fmt.Printf("GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	if err := selfCheck(); err != nil {
		return err
	}
	initWorkerPool()

	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return errors.Wrapf(err, "디렉터리 생성 %s", cfg.outDir)
	}

	allResults, err := benchmarkAll(cfg, algos)
	if err != nil {
		return err
	}

	names := make([]string, len(algos))
	for i, a := range algos {
		names[i] = a.name
	}
	groups := summarizeGroups(allResults, names, cfg.runs, cfg.threshold)

	fmt.Println("결과 저장 중...")

	if err := saveResultsToMarkdown(cfg.outDir, allResults, groups, cfg.threshold); err != nil {
		return err
	}
	fmt.Printf("%s 파일이 생성되었습니다.\n", markdownFile)

	if err := saveResultsToJSON(cfg.outDir, allResults, groups); err != nil {
		return err
	}
	fmt.Printf("%s 파일이 생성되었습니다.\n", jsonFile)

	if err := saveRawMatrices(cfg.outDir, groups); err != nil {
		return err
	}
	fmt.Printf("%s/ 에 원시 행렬이 생성되었습니다.\n", rawDir)

	if len(kinds) > 0 {
		runID := cfg.runID
		if runID == "" {
			runID = time.Now().Format("20060102-150405")
		}
		if err := persistResults(ctx, cfg.storeDir, kinds, runID, allResults); err != nil {
			return err
		}
		fmt.Printf("결과를 %v 저장소에 기록했습니다 (run-id %s).\n", kinds, runID)
	}

	failed := 0
	for _, r := range allResults {
		if !r.Verified {
			failed++
		}
	}
	if used, capacity := workerPoolStatus(); used > 0 {
		fmt.Printf("경고: 워커 풀 슬롯 %d/%d개가 반환되지 않았습니다.\n", used, capacity)
	}
	if failed > 0 {
		fmt.Printf("경고: %d건의 실행이 검증에 실패했습니다.\n", failed)
	}

	fmt.Println("벤치마크 완료!")
	return nil
}
