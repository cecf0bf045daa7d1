package pdqsort

// insertionSort [begin, end) 경계 검사형 삽입정렬. 맨 왼쪽 범위용.
func (d *driver[S]) insertionSort(begin, end int) {
	if begin == end {
		return
	}
	for cur := begin + 1; cur < end; cur++ {
		if !d.s.less(cur, cur-1) {
			continue
		}
		sift := cur
		for {
			d.s.swap(sift, sift-1)
			sift--
			if sift == begin || !d.s.less(sift, sift-1) {
				break
			}
		}
	}
}

// unguardedInsertionSort 경계 검사를 생략한 삽입정렬.
// begin-1에 범위 내 모든 값보다 크지 않은 센티널이 있어야 한다
// (분할 직후의 맨 왼쪽이 아닌 범위는 항상 그렇다).
func (d *driver[S]) unguardedInsertionSort(begin, end int) {
	if begin == end {
		return
	}
	for cur := begin + 1; cur < end; cur++ {
		if !d.s.less(cur, cur-1) {
			continue
		}
		sift := cur
		for {
			d.s.swap(sift, sift-1)
			sift--
			if !d.s.less(sift, sift-1) {
				break
			}
		}
	}
}

// partialInsertionSort 이동 횟수가 partialInsertionSortLimit를 넘으면 포기하는 삽입정렬.
// true면 범위가 정렬된 것이고, false면 호출자가 정상 경로로 마저 정렬해야 한다.
func (d *driver[S]) partialInsertionSort(begin, end int) bool {
	if begin == end {
		return true
	}
	limit := 0
	for cur := begin + 1; cur < end; cur++ {
		if d.s.less(cur, cur-1) {
			sift := cur
			for {
				d.s.swap(sift, sift-1)
				sift--
				if sift == begin || !d.s.less(sift, sift-1) {
					break
				}
			}
			limit += cur - sift
		}
		if limit > partialInsertionSortLimit {
			return false
		}
	}
	return true
}
