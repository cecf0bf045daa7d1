package pdqsort

// Allocator 힙정렬 폴백이 쓰는 레코드 크기 임시 버퍼를 할당한다.
// 바이트 뷰 정렬에서만 호출되며, 호출당 최대 한 번이다.
type Allocator func(size int) ([]byte, error)

func defaultAllocator(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Stats 한 번의 정렬 호출에서 일어난 일을 센다. WithStats로 넘겼을 때만 채워진다.
// 값은 누적되므로 재사용하려면 호출 전에 0으로 초기화한다.
type Stats struct {
	Comparisons int64 // 비교 함수 호출 수
	Swaps       int64 // 레코드 교환 수
	Moves       int64 // 폴백 힙정렬의 레코드 복사 수

	InsertionSorts       int // 작은 범위 삽입정렬
	Partitions           int // partitionRight 호출
	AlreadyPartitioned   int // 교환 없이 끝난 분할
	FastExits            int // 부분 삽입정렬로 조기 종료
	DuplicateRuns        int // partitionLeft로 흡수한 중복 연속
	UnbalancedPartitions int // 1/8 미만 쪽이 생긴 분할
	HeapFallbacks        int // 깊이 예산 소진 후 힙정렬
}

type config struct {
	stats *Stats
	alloc Allocator
}

// Option 정렬 호출 옵션
type Option func(*config)

// WithStats 호출 통계를 st에 누적한다.
func WithStats(st *Stats) Option {
	return func(c *config) {
		c.stats = st
	}
}

// WithAllocator 폴백 임시 레코드 할당자를 바꾼다. 타입 슬라이스 정렬에서는 무시된다.
func WithAllocator(alloc Allocator) Option {
	return func(c *config) {
		if alloc != nil {
			c.alloc = alloc
		}
	}
}

func newConfig(opts []Option) config {
	c := config{alloc: defaultAllocator}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
