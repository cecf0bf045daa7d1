package main

import (
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
)

// parallelQuickSort 워커 풀을 쓰는 병렬 3-way 퀵소트
func parallelQuickSort[T constraints.Ordered](arr []T) {
	if len(arr) < 2 {
		return
	}

	initWorkerPool()
	threshold := getOptimalThreshold(len(arr))
	parallelQuickSortHelper(arr, 0, len(arr)-1, runtime.NumCPU(), threshold)
}

func parallelQuickSortHelper[T constraints.Ordered](arr []T, low, high, depth, threshold int) {
	if low >= high {
		return
	}
	if depth <= 1 || high-low+1 <= threshold {
		quickSortHelper(arr, low, high)
		return
	}

	lt, gt := partition3Way(arr, low, high)

	// 양쪽 구간은 겹치지 않으므로 각 고루틴이 독립적으로 슬롯을 잡는다.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		tryWorker(
			func() { parallelQuickSortHelper(arr, low, lt-1, depth/2, threshold) },
			func() { quickSortHelper(arr, low, lt-1) },
		)
	}()

	go func() {
		defer wg.Done()
		tryWorker(
			func() { parallelQuickSortHelper(arr, gt+1, high, depth/2, threshold) },
			func() { quickSortHelper(arr, gt+1, high) },
		)
	}()

	wg.Wait()
}

// safeParallelQuickSort 패닉 시 워커 풀을 정리하고 순차 퀵소트로 다시 정렬한다.
func safeParallelQuickSort[T constraints.Ordered](arr []T) {
	defer func() {
		if r := recover(); r != nil {
			resetWorkerPool()
			quickSort(arr)
		}
	}()

	parallelQuickSort(arr)
}
