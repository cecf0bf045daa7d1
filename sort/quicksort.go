package main

import "golang.org/x/exp/constraints"

// quickSort 3-way 퀵소트 (하이브리드: 작은 구간은 삽입정렬)
// 깊이 제한이 없어 피벗이 계속 나쁘면 O(n²)까지 간다. pdqsort와의 비교 기준.
func quickSort[T constraints.Ordered](arr []T) {
	if len(arr) < 2 {
		return
	}
	quickSortHelper(arr, 0, len(arr)-1)
}

func quickSortHelper[T constraints.Ordered](arr []T, low, high int) {
	for low < high {
		size := high - low + 1

		// 작은 배열에는 삽입정렬 사용
		if size <= 16 {
			insertionSort(arr, low, high)
			return
		}

		// 3-way 파티셔닝으로 중복값 처리
		lt, gt := partition3Way(arr, low, high)

		// 작은 쪽만 재귀, 큰 쪽은 반복 (스택 깊이 O(log n))
		if lt-low < high-gt {
			quickSortHelper(arr, low, lt-1)
			low = gt + 1
		} else {
			quickSortHelper(arr, gt+1, high)
			high = lt - 1
		}
	}
}

// partition3Way arr[low..high]를 피벗 미만/같음/초과로 나누고 같음 구간 [lt, gt]를 돌려준다.
func partition3Way[T constraints.Ordered](arr []T, low, high int) (int, int) {
	medianOfThree(arr, low, low+(high-low)/2, high)
	pivot := arr[low]

	lt := low      // arr[low..lt-1] < pivot
	i := low + 1   // arr[lt..i-1] == pivot
	gt := high + 1 // arr[gt..high] > pivot

	for i < gt {
		switch {
		case arr[i] < pivot:
			arr[lt], arr[i] = arr[i], arr[lt]
			lt++
			i++
		case arr[i] > pivot:
			gt--
			arr[i], arr[gt] = arr[gt], arr[i]
		default:
			i++
		}
	}

	return lt, gt - 1
}

// medianOfThree 세 값의 중앙값을 a 위치로 옮긴다.
func medianOfThree[T constraints.Ordered](arr []T, a, b, c int) {
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	if arr[b] > arr[c] {
		arr[b], arr[c] = arr[c], arr[b]
	}
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	arr[a], arr[b] = arr[b], arr[a]
}

// insertionSort arr[low..high] 삽입정렬
func insertionSort[T constraints.Ordered](arr []T, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := arr[i]
		j := i - 1
		for j >= low && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}
