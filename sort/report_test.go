package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleResults() []BenchmarkResult {
	var results []BenchmarkResult
	for run := 1; run <= 3; run++ {
		for i, algo := range []string{algoPdqsort, algoMergesort} {
			results = append(results, BenchmarkResult{
				Pattern:     patternRandom,
				Algorithm:   algo,
				DataSize:    1000,
				StorageType: storageMemory,
				TestRun:     run,
				Duration:    time.Duration(100*(i+1) + run),
				MemoryUsage: 64,
				Verified:    true,
			})
		}
	}
	return results
}

func TestReports(t *testing.T) {
	dir := t.TempDir()
	results := sampleResults()
	groups := summarizeGroups(results, []string{algoPdqsort, algoMergesort}, 3, 1)

	require.NoError(t, saveResultsToMarkdown(dir, results, groups, 1))
	md, err := os.ReadFile(filepath.Join(dir, markdownFile))
	require.NoError(t, err)
	require.Contains(t, string(md), "# 정렬 알고리즘 벤치마크 결과")
	require.Contains(t, string(md), "## 무작위 - 인메모리 - 1000개 데이터")
	require.Contains(t, string(md), "| 머지소트 |")

	require.NoError(t, saveResultsToJSON(dir, results, groups))
	raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)
	var report jsonReport
	require.NoError(t, json.Unmarshal(raw, &report))
	require.Equal(t, results, report.Results)
	require.Len(t, report.Groups, 1)
	require.Equal(t, patternRandom, report.Groups[0].Pattern)

	require.NoError(t, saveRawMatrices(dir, groups))
	path := filepath.Join(dir, rawDir, rawFileName(groups[0].groupKey))
	matrix, err := readRawMatrix(path)
	require.NoError(t, err)
	// 세 값 중 양 끝은 |z| ≈ 1.22라 평균으로 바뀐다.
	require.Equal(t, [][]float64{{102, 202}, {102, 202}, {102, 202}}, matrix)

	header, err := rawHeader(path)
	require.NoError(t, err)
	require.Equal(t, "pdqsort mergesort", header)
}

func TestRawMatrixWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n3 4\n"), 0o644))

	matrix, err := readRawMatrix(path)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, matrix)

	header, err := rawHeader(path)
	require.NoError(t, err)
	require.Empty(t, header)
}
