package pdqsort

// heapSort [begin, end)를 최대 힙으로 정렬한다. 깊이 예산을 다 쓴 범위의 최후 보장 경로.
// 임시 레코드 하나만 쓰며, 할당에 실패하면 아무것도 옮기지 않고 오류를 돌려준다.
func (d *driver[S]) heapSort(begin, end int) error {
	n := end - begin
	if n < 2 {
		return nil
	}
	if err := d.s.reserve(); err != nil {
		return err
	}

	// 힙 구성
	for k := n/2 - 1; k >= 0; k-- {
		d.siftDown(begin, k, n)
	}

	for last := n - 1; last > 0; last-- {
		// 루트를 last로 보내고, 밀려난 값을 tmp에 든다.
		d.s.hold(begin + last)
		d.s.move(begin+last, begin)

		// Floyd: tmp와 비교하지 않고 큰 자식을 끌어올리며 구멍을 잎까지 내린다.
		i := 0
		for {
			j := 2*i + 1
			if j >= last {
				break
			}
			if j+1 < last && d.s.less(begin+j, begin+j+1) {
				j++
			}
			d.s.move(begin+i, begin+j)
			i = j
		}

		// 보정: 잎에서 tmp를 제자리까지 올린다.
		for i > 0 {
			p := (i - 1) / 2
			if !d.s.lessThanHeld(begin + p) {
				break
			}
			d.s.move(begin+i, begin+p)
			i = p
		}
		d.s.place(begin + i)
	}
	return nil
}

// siftDown [begin, begin+n) 힙에서 k번째 노드를 제자리까지 내린다.
func (d *driver[S]) siftDown(begin, k, n int) {
	d.s.hold(begin + k)
	i := k
	for {
		j := 2*i + 1
		if j >= n {
			break
		}
		if j+1 < n && d.s.less(begin+j, begin+j+1) {
			j++
		}
		if !d.s.heldLess(begin + j) {
			break
		}
		d.s.move(begin+i, begin+j)
		i = j
	}
	d.s.place(begin + i)
}
