package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	markdownFile = "benchmark_results.md"
	jsonFile     = "benchmark_results.json"
	rawDir       = "raw"
)

// labelOf 보고서에 쓸 알고리즘 이름
func labelOf(name string) string {
	for _, a := range algorithms {
		if a.name == name {
			return a.label
		}
	}
	return name
}

// saveResultsToMarkdown 그룹별 실행 표와 이상치 제거 전후 평균을 마크다운으로 저장한다.
func saveResultsToMarkdown(dir string, results []BenchmarkResult, groups []groupSummary, threshold float64) error {
	path := filepath.Join(dir, markdownFile)
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "보고서 생성 %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)

	var builder strings.Builder
	builder.Grow(1024 * 1024)

	builder.WriteString("# 정렬 알고리즘 벤치마크 결과\n\n")
	builder.WriteString(fmt.Sprintf("실행 시간: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU 코어 수: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0)))
	builder.WriteString(fmt.Sprintf("이상치 기준: |z| > %g\n\n", threshold))

	for _, g := range groups {
		builder.WriteString(fmt.Sprintf("## %s - %s - %d개 데이터\n\n",
			patternNames[g.Pattern], storageNames[g.StorageType], g.DataSize))

		builder.WriteString("| 알고리즘 | 테스트 | 실행시간 | 메모리사용량 | CPU사용률 | 고루틴수 | 비교횟수 | 검증 |\n")
		builder.WriteString("|----------|--------|----------|--------------|-----------|----------|----------|------|\n")

		for _, algo := range g.Algorithms {
			for _, r := range results {
				if r.Pattern != g.Pattern || r.DataSize != g.DataSize ||
					r.StorageType != g.StorageType || r.Algorithm != algo {
					continue
				}
				builder.WriteString(fmt.Sprintf("| %s | %d | %v | %s | %.2f%% | %d | %s | %s |\n",
					labelOf(algo), r.TestRun, r.Duration, formatBytes(r.MemoryUsage),
					r.CPUUsage, r.GoroutineNum, formatCount(r.Comparisons), verifyMark(r)))
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## 요약 통계\n\n")

	for _, g := range groups {
		builder.WriteString(fmt.Sprintf("### %s - %s - %d개 데이터 평균\n\n",
			patternNames[g.Pattern], storageNames[g.StorageType], g.DataSize))
		builder.WriteString("| 알고리즘 | 평균 실행시간 | 이상치 제거 후 | 평균 메모리사용량 |\n")
		builder.WriteString("|----------|---------------|----------------|-------------------|\n")

		for j, algo := range g.Algorithms {
			var totalMemory uint64
			count := 0
			for _, r := range results {
				if r.Pattern == g.Pattern && r.DataSize == g.DataSize &&
					r.StorageType == g.StorageType && r.Algorithm == algo {
					totalMemory += r.MemoryUsage
					count++
				}
			}
			if count == 0 {
				continue
			}
			builder.WriteString(fmt.Sprintf("| %s | %v | %v | %s |\n",
				labelOf(algo),
				time.Duration(g.RawMeans[j]).Round(time.Nanosecond),
				time.Duration(g.FilteredMeans[j]).Round(time.Nanosecond),
				formatBytes(totalMemory/uint64(count))))
		}
		builder.WriteString(fmt.Sprintf("\n이상치로 바뀐 값: %d개\n\n", g.Replaced))
	}

	if _, err := writer.WriteString(builder.String()); err != nil {
		return errors.Wrapf(err, "보고서 쓰기 %s", path)
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "보고서 쓰기 %s", path)
	}
	return file.Close()
}

func verifyMark(r BenchmarkResult) string {
	if r.Verified {
		return "통과"
	}
	return "실패"
}

func formatCount(n int64) string {
	if n == 0 {
		return "-"
	}
	return strconv.FormatInt(n, 10)
}

// jsonReport JSON 보고서 최상위 구조
type jsonReport struct {
	Results []BenchmarkResult `json:"results"`
	Groups  []groupSummary    `json:"groups"`
}

// saveResultsToJSON 전체 실행 결과와 그룹 요약을 JSON으로 저장한다.
func saveResultsToJSON(dir string, results []BenchmarkResult, groups []groupSummary) error {
	path := filepath.Join(dir, jsonFile)
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "JSON 생성 %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonReport{Results: results, Groups: groups}); err != nil {
		return errors.Wrapf(err, "JSON 인코딩 %s", path)
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "JSON 쓰기 %s", path)
	}
	return file.Close()
}

// rawFileName 그룹별 원시 행렬 파일 이름
func rawFileName(g groupKey) string {
	return fmt.Sprintf("%s_%08d_%s.txt", g.Pattern, g.DataSize, g.StorageType)
}

// saveRawMatrices 그룹마다 이상치를 걸러낸 행렬을 한 줄에 한 실행씩,
// 알고리즘별 나노초를 공백으로 구분해 저장한다. 첫 줄은 알고리즘 이름.
func saveRawMatrices(dir string, groups []groupSummary) error {
	rawPath := filepath.Join(dir, rawDir)
	if err := os.MkdirAll(rawPath, 0o755); err != nil {
		return errors.Wrapf(err, "디렉터리 생성 %s", rawPath)
	}

	for _, g := range groups {
		path := filepath.Join(rawPath, rawFileName(g.groupKey))
		if err := writeMatrix(path, strings.Join(g.Algorithms, " "), g.Filtered); err != nil {
			return err
		}
	}
	return nil
}

// writeMatrix header가 있으면 "# header" 줄을 먼저 쓴다.
func writeMatrix(path, header string, matrix [][]float64) error {
	var builder strings.Builder
	if header != "" {
		builder.WriteString("# ")
		builder.WriteString(header)
		builder.WriteByte('\n')
	}
	for _, row := range matrix {
		for j, v := range row {
			if j > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(strconv.FormatFloat(v, 'f', 0, 64))
		}
		builder.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return errors.Wrapf(err, "원시 행렬 쓰기 %s", path)
	}
	return nil
}

// rawHeader 첫 줄이 "# "로 시작하면 그 뒤를 돌려준다.
func rawHeader(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "원시 행렬 읽기 %s", path)
	}
	first, _, _ := strings.Cut(string(content), "\n")
	if header, ok := strings.CutPrefix(first, "# "); ok {
		return strings.TrimSpace(header), nil
	}
	return "", nil
}

// readRawMatrix saveRawMatrices가 쓴 파일을 다시 읽는다. # 줄은 건너뛴다.
func readRawMatrix(path string) ([][]float64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "원시 행렬 읽기 %s", path)
	}

	var matrix [][]float64
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", path, i+1)
			}
			row[j] = v
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}
