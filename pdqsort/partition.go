package pdqsort

// partitionRight s[begin]을 피벗으로 [begin, end)를 나눈다.
// 결과: 피벗 왼쪽은 피벗보다 작고, 오른쪽은 피벗보다 작지 않다.
// 피벗의 최종 위치와, 교환이 한 번도 필요 없었는지(이미 분할됨)를 돌려준다.
func (d *driver[S]) partitionRight(begin, end int) (int, bool) {
	first, last := begin, end

	// 피벗보다 작은 값을 건너뛴다. 피벗 선택이 끝쪽에 피벗 이상의 값을 남겨 두어 멈춘다.
	for {
		first++
		if !d.s.less(first, begin) {
			break
		}
	}

	// 첫 원소부터 피벗 이상이면 왼쪽에 센티널이 없으므로 first를 넘지 않게 막는다.
	if first-1 == begin {
		for first < last {
			last--
			if d.s.less(last, begin) {
				break
			}
		}
	} else {
		for {
			last--
			if d.s.less(last, begin) {
				break
			}
		}
	}

	alreadyPartitioned := first >= last

	for first < last {
		d.s.swap(first, last)
		for {
			first++
			if !d.s.less(first, begin) {
				break
			}
		}
		for {
			last--
			if d.s.less(last, begin) {
				break
			}
		}
	}

	pivot := first - 1
	if pivot != begin {
		d.s.swap(begin, pivot)
	}
	return pivot, alreadyPartitioned
}

// partitionLeft partitionRight의 거울상. 피벗과 같은 값을 왼쪽에 모은다.
// 직전 분할의 피벗(begin-1)과 같은 값이 이어질 때만 쓰며, 돌려준 위치까지는
// 모두 피벗과 같으므로 다시 정렬할 필요가 없다.
func (d *driver[S]) partitionLeft(begin, end int) int {
	first, last := begin, end

	for {
		last--
		if !d.s.less(begin, last) {
			break
		}
	}

	if last+1 == end {
		for first < last {
			first++
			if d.s.less(begin, first) {
				break
			}
		}
	} else {
		for {
			first++
			if d.s.less(begin, first) {
				break
			}
		}
	}

	for first < last {
		d.s.swap(first, last)
		for {
			last--
			if !d.s.less(begin, last) {
				break
			}
		}
		for {
			first++
			if d.s.less(begin, first) {
				break
			}
		}
	}

	if last != begin {
		d.s.swap(begin, last)
	}
	return last
}
