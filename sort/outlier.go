package main

import "math"

// filterOutliers runs x 알고리즘 행렬(나노초)에서 열마다 평균과 모표준편차를 구해
// |z| > threshold인 값을 그 열의 평균으로 바꾼다. 원본 행렬은 그대로 두고,
// 바뀐 행렬과 (바꾸기 전) 열 평균, 바뀐 값 개수를 돌려준다.
// 표준편차가 0인 열은 바꿀 값이 없다.
func filterOutliers(matrix [][]float64, threshold float64) ([][]float64, []float64, int) {
	if len(matrix) == 0 {
		return nil, nil, 0
	}
	cols := len(matrix[0])
	rows := float64(len(matrix))

	means := make([]float64, cols)
	for _, row := range matrix {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= rows
	}

	stds := make([]float64, cols)
	for _, row := range matrix {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / rows)
	}

	filtered := make([][]float64, len(matrix))
	replaced := 0
	for i, row := range matrix {
		filtered[i] = make([]float64, cols)
		for j, v := range row {
			filtered[i][j] = v
			if stds[j] == 0 {
				continue
			}
			if math.Abs((v-means[j])/stds[j]) > threshold {
				filtered[i][j] = means[j]
				replaced++
			}
		}
	}
	return filtered, means, replaced
}

// columnMeans 열 평균
func columnMeans(matrix [][]float64) []float64 {
	if len(matrix) == 0 {
		return nil
	}
	means := make([]float64, len(matrix[0]))
	for _, row := range matrix {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(len(matrix))
	}
	return means
}

// groupKey 벤치마크 행렬 한 칸: (패턴, 크기, 저장방식)
type groupKey struct {
	Pattern     string `json:"pattern"`
	DataSize    int    `json:"data_size"`
	StorageType string `json:"storage_type"`
}

// groupSummary 그룹 하나의 이상치 필터 결과
type groupSummary struct {
	groupKey
	Algorithms    []string    `json:"algorithms"`
	Raw           [][]float64 `json:"raw_ns"`
	Filtered      [][]float64 `json:"filtered_ns"`
	RawMeans      []float64   `json:"raw_mean_ns"`
	FilteredMeans []float64   `json:"filtered_mean_ns"`
	Replaced      int         `json:"replaced"`
}

// summarizeGroups results를 그룹별 runs x algorithms 행렬로 모아 이상치를 걸러낸다.
// 그룹 순서는 결과가 처음 나온 순서다. 빠진 칸(실패한 실행)은 0으로 남는다.
func summarizeGroups(results []BenchmarkResult, algos []string, runs int, threshold float64) []groupSummary {
	col := make(map[string]int, len(algos))
	for j, a := range algos {
		col[a] = j
	}

	index := make(map[groupKey]int)
	var groups []groupSummary
	for _, r := range results {
		key := groupKey{r.Pattern, r.DataSize, r.StorageType}
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			raw := make([][]float64, runs)
			for i := range raw {
				raw[i] = make([]float64, len(algos))
			}
			groups = append(groups, groupSummary{groupKey: key, Algorithms: algos, Raw: raw})
		}
		j, ok := col[r.Algorithm]
		if !ok || r.TestRun < 1 || r.TestRun > runs {
			continue
		}
		groups[gi].Raw[r.TestRun-1][j] = float64(r.Duration.Nanoseconds())
	}

	for i := range groups {
		g := &groups[i]
		g.Filtered, g.RawMeans, g.Replaced = filterOutliers(g.Raw, threshold)
		g.FilteredMeans = columnMeans(g.Filtered)
	}
	return groups
}
