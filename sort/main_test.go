package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlaau/ksort/kvdb"
)

func smallConfig(t *testing.T) benchConfig {
	cfg := defaultConfig()
	dir := t.TempDir()
	cfg.sizes = []int{200, 3000}
	cfg.runs = 2
	cfg.patterns = []string{patternRandom, patternPipeOrgan}
	cfg.fileMinSize = 3000
	cfg.outDir = dir
	cfg.storeDir = filepath.Join(dir, "stores")
	cfg.stores = []string{string(kvdb.Bbolt), string(kvdb.Pebble)}
	cfg.runID = "test"
	cfg.settle = 0
	return cfg
}

func TestRunBench(t *testing.T) {
	cfg := smallConfig(t)
	require.NoError(t, runBench(context.Background(), cfg))

	for _, name := range []string{markdownFile, jsonFile} {
		_, err := os.Stat(filepath.Join(cfg.outDir, name))
		require.NoError(t, err, name)
	}
	raws, err := os.ReadDir(filepath.Join(cfg.outDir, rawDir))
	require.NoError(t, err)
	require.Len(t, raws, 4)

	// 파일 모드 임시 입력은 지워진다.
	matches, err := filepath.Glob(filepath.Join(cfg.outDir, "test_data_*"))
	require.NoError(t, err)
	require.Empty(t, matches)

	results, err := loadResults(cfg.storeDir, kvdb.Pebble, "test")
	require.NoError(t, err)
	require.Len(t, results, 2*2*2*len(algorithms))
	for _, r := range results {
		require.True(t, r.Verified, "%s/%s/%d: %s", r.Pattern, r.Algorithm, r.DataSize, r.Error)
		if r.DataSize == 3000 {
			require.Equal(t, storageFile, r.StorageType)
		} else {
			require.Equal(t, storageMemory, r.StorageType)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := smallConfig(t)
	cfg.patterns = []string{"zigzag"}
	_, _, err := cfg.validate()
	require.ErrorIs(t, err, errUnknownPattern)

	cfg = smallConfig(t)
	cfg.algorithms = []string{"bogosort"}
	_, _, err = cfg.validate()
	require.ErrorIs(t, err, errUnknownAlgorithm)

	cfg = smallConfig(t)
	cfg.stores = []string{"leveldb"}
	_, _, err = cfg.validate()
	require.ErrorIs(t, err, kvdb.ErrUnknownKind)

	cfg = smallConfig(t)
	cfg.runs = 0
	_, _, err = cfg.validate()
	require.Error(t, err)
}

func TestOutlierCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeMatrix(path, "a b", [][]float64{{10, 100}, {10, 100}, {10, 100}, {10, 500}}))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"outlier", path})
	require.NoError(t, cmd.Execute())

	matrix, err := readRawMatrix(path)
	require.NoError(t, err)
	require.Equal(t, float64(200), matrix[3][1])

	header, err := rawHeader(path)
	require.NoError(t, err)
	require.Equal(t, "a b", header)
}
