package main

import (
	"runtime"
	"sync"
)

// 전역 워커 풀 (병렬 알고리즘끼리 공유)
var (
	workerPool     chan struct{}
	workerPoolOnce sync.Once
)

// initWorkerPool 채널 세마포 초기화. 슬롯 수는 CPU 코어 수.
func initWorkerPool() {
	workerPoolOnce.Do(func() {
		workerPool = make(chan struct{}, runtime.NumCPU())
	})
}

// tryWorker 슬롯을 얻으면 parallel을, 못 얻으면 호출한 고루틴에서 sequential을 실행한다.
func tryWorker(parallel, sequential func()) {
	select {
	case workerPool <- struct{}{}:
		defer func() { <-workerPool }()
		parallel()
	default:
		sequential()
	}
}

// resetWorkerPool 패닉으로 반환되지 못한 슬롯 정리
func resetWorkerPool() {
	if workerPool == nil {
		return
	}
	for len(workerPool) > 0 {
		<-workerPool
	}
}

// workerPoolStatus 사용 중 슬롯 수와 용량
func workerPoolStatus() (used int, capacity int) {
	if workerPool == nil {
		return 0, 0
	}
	return len(workerPool), cap(workerPool)
}

// getOptimalThreshold 전체 크기에 따른 순차 처리 임계값
func getOptimalThreshold(totalSize int) int {
	switch {
	case totalSize < 1000:
		return totalSize // 작은 데이터는 병렬처리 안함
	case totalSize < 10000:
		return 300
	case totalSize < 100000:
		return 800
	default:
		return 1500
	}
}
