package main

import "golang.org/x/exp/constraints"

// mergeSort 하향식 머지소트. 입력을 건드리지 않고 정렬된 새 슬라이스를 돌려준다.
// 안정 정렬이며 O(n) 보조 메모리를 쓴다 (pdqsort는 O(1)).
func mergeSort[T constraints.Ordered](arr []T) []T {
	if len(arr) <= 1 {
		return arr
	}

	// 작은 배열은 삽입정렬
	if len(arr) <= 16 {
		result := make([]T, len(arr))
		copy(result, arr)
		insertionSort(result, 0, len(result)-1)
		return result
	}

	mid := len(arr) / 2
	left := mergeSort(arr[:mid])
	right := mergeSort(arr[mid:])

	return merge(left, right)
}

// merge 정렬된 두 슬라이스 병합 (같으면 왼쪽 먼저)
func merge[T constraints.Ordered](left, right []T) []T {
	result := make([]T, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}

	result = append(result, left[i:]...)
	return append(result, right[j:]...)
}
