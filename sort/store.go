package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rlaau/ksort/kvdb"
)

// resultKey <runID>/<pattern>/<size>/<storage>/<algorithm>/<run>.
// 크기와 실행 번호를 0으로 채워 사전순이 수 순서와 같다.
func resultKey(runID string, r BenchmarkResult) []byte {
	return []byte(fmt.Sprintf("%s/%s/%08d/%s/%s/%02d",
		runID, r.Pattern, r.DataSize, r.StorageType, r.Algorithm, r.TestRun))
}

// storePath kind별 저장 위치. bbolt는 파일, 나머지는 디렉터리.
func storePath(dir string, kind kvdb.Kind) string {
	if kind == kvdb.Bbolt {
		return filepath.Join(dir, "results.bbolt")
	}
	return filepath.Join(dir, "results."+string(kind))
}

func resultEntries(runID string, results []BenchmarkResult) ([]kvdb.Entry, error) {
	entries := make([]kvdb.Entry, 0, len(results))
	for _, r := range results {
		value, err := json.Marshal(r)
		if err != nil {
			return nil, errors.Wrapf(err, "결과 인코딩 %s", resultKey(runID, r))
		}
		entries = append(entries, kvdb.Entry{Key: resultKey(runID, r), Value: value})
	}
	return entries, nil
}

// persistResults results를 kinds 저장소 전부에 동시에 쓴다. 하나라도 실패하면 그 오류를 돌려준다.
func persistResults(ctx context.Context, dir string, kinds []kvdb.Kind, runID string, results []BenchmarkResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "디렉터리 생성 %s", dir)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		kind := kind
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// PutBatch가 순서를 바꾸므로 저장소마다 따로 만든다.
			entries, err := resultEntries(runID, results)
			if err != nil {
				return err
			}

			s, err := kvdb.Open(kind, storePath(dir, kind))
			if err != nil {
				return err
			}
			if err := s.PutBatch(entries); err != nil {
				_ = s.Close()
				return errors.Wrapf(err, "%s 저장", kind)
			}
			return s.Close()
		})
	}
	return g.Wait()
}

// loadResults 저장소에서 runID의 결과를 키 순서대로 읽는다.
func loadResults(dir string, kind kvdb.Kind, runID string) ([]BenchmarkResult, error) {
	s, err := kvdb.Open(kind, storePath(dir, kind), kvdb.ReadOnly())
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var results []BenchmarkResult
	err = s.Scan([]byte(runID+"/"), func(key, value []byte) error {
		var r BenchmarkResult
		if err := json.Unmarshal(value, &r); err != nil {
			return errors.Wrapf(err, "결과 디코딩 %s", key)
		}
		results = append(results, r)
		return nil
	})
	return results, err
}
