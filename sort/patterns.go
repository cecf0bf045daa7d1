package main

import (
	"github.com/cockroachdb/errors"
)

// 입력 패턴 이름
const (
	patternRandom          = "random"
	patternAscending       = "ascending"
	patternDescending      = "descending"
	patternAllEqual        = "all_equal"
	patternFewUnique       = "few_unique"
	patternMostlyAscending = "mostly_ascending"
	patternPipeOrgan       = "pipe_organ"
)

// few_unique 패턴의 서로 다른 값 개수
const fewUniqueValues = 16

var allPatterns = []string{
	patternRandom,
	patternAscending,
	patternDescending,
	patternAllEqual,
	patternFewUnique,
	patternMostlyAscending,
	patternPipeOrgan,
}

var patternNames = map[string]string{
	patternRandom:          "무작위",
	patternAscending:       "오름차순",
	patternDescending:      "내림차순",
	patternAllEqual:        "모두같음",
	patternFewUnique:       "소수값",
	patternMostlyAscending: "거의정렬",
	patternPipeOrgan:       "파이프오르간",
}

var errUnknownPattern = errors.New("알 수 없는 입력 패턴")

// generateData rng에서 pattern 모양의 size개 입력을 만든다.
func generateData(rng *xoroshiro, pattern string, size int) ([]uint64, error) {
	data := make([]uint64, size)

	switch pattern {
	case patternRandom:
		for i := range data {
			data[i] = rng.Uint64()
		}
	case patternAscending:
		for i := range data {
			data[i] = uint64(i)
		}
	case patternDescending:
		for i := range data {
			data[i] = uint64(size - i)
		}
	case patternAllEqual:
		v := rng.Uint64()
		for i := range data {
			data[i] = v
		}
	case patternFewUnique:
		var values [fewUniqueValues]uint64
		for i := range values {
			values[i] = rng.Uint64()
		}
		for i := range data {
			data[i] = values[rng.Uint64()%fewUniqueValues]
		}
	case patternMostlyAscending:
		for i := range data {
			data[i] = uint64(i)
		}
		// 약 1%만 흐트러뜨린다.
		if size > 1 {
			for k := 0; k < size/100+1; k++ {
				i := int(rng.Uint64() % uint64(size))
				j := int(rng.Uint64() % uint64(size))
				data[i], data[j] = data[j], data[i]
			}
		}
	case patternPipeOrgan:
		half := size / 2
		for i := range data {
			if i < half {
				data[i] = uint64(i)
			} else {
				data[i] = uint64(size - i)
			}
		}
	default:
		return nil, errors.Wrapf(errUnknownPattern, "%q", pattern)
	}

	return data, nil
}
