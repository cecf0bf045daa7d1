package main

import (
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
)

// parallelMergeSort 워커 풀을 쓰는 병렬 머지소트. 새 슬라이스를 돌려준다.
func parallelMergeSort[T constraints.Ordered](arr []T) []T {
	initWorkerPool()
	return parallelMergeSortHelper(arr, runtime.NumCPU(), getOptimalThreshold(len(arr)))
}

func parallelMergeSortHelper[T constraints.Ordered](arr []T, depth, threshold int) []T {
	if len(arr) <= 1 {
		return arr
	}
	if depth <= 1 || len(arr) < threshold {
		return mergeSort(arr)
	}

	mid := len(arr) / 2
	var left, right []T

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		tryWorker(
			func() { left = parallelMergeSortHelper(arr[:mid], depth/2, threshold) },
			func() { left = mergeSort(arr[:mid]) },
		)
	}()

	go func() {
		defer wg.Done()
		tryWorker(
			func() { right = parallelMergeSortHelper(arr[mid:], depth/2, threshold) },
			func() { right = mergeSort(arr[mid:]) },
		)
	}()

	wg.Wait()
	return merge(left, right)
}

// safeParallelMergeSort 패닉 시 워커 풀을 정리하고 순차 머지소트 결과를 돌려준다.
func safeParallelMergeSort[T constraints.Ordered](arr []T) (result []T) {
	defer func() {
		if r := recover(); r != nil {
			resetWorkerPool()
			result = mergeSort(arr)
		}
	}()

	result = parallelMergeSort(arr)
	if result == nil {
		return mergeSort(arr)
	}
	return result
}
