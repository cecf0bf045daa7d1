package pdqsort

// sort2 s[a] <= s[b]가 되도록 한다.
func (d *driver[S]) sort2(a, b int) {
	if d.s.less(b, a) {
		d.s.swap(a, b)
	}
}

// sort3 s[a] <= s[b] <= s[c]가 되도록 한다.
func (d *driver[S]) sort3(a, b, c int) {
	d.sort2(a, b)
	d.sort2(b, c)
	d.sort2(a, b)
}

// choosePivot 고른 피벗을 begin에 둔다.
// ninther 임계값을 넘으면 세 개의 median-of-3의 중앙값, 아니면 (중앙, 시작, 끝-1)의 중앙값.
// 어느 쪽이든 끝 세 칸 안에 피벗 이상의 값이 남아 partitionRight의 왼쪽 스캔을 멈춰준다.
func (d *driver[S]) choosePivot(begin, end int) {
	size := end - begin
	mid := begin + size/2
	if size > nintherThreshold {
		d.sort3(begin, mid, end-1)
		d.sort3(begin+1, mid-1, end-2)
		d.sort3(begin+2, mid+1, end-3)
		d.sort3(mid-1, mid, mid+1)
		d.s.swap(begin, mid)
		return
	}
	d.sort3(mid, begin, end-1)
}
