package pdqsort

import "github.com/cockroachdb/errors"

var (
	// ErrNilComparator 비교 함수 없이 호출됨 (프로그래밍 오류)
	ErrNilComparator = errors.New("pdqsort: nil comparator")
	// ErrInvalidStride 비어있지 않은 버퍼에 0 이하의 stride
	ErrInvalidStride = errors.New("pdqsort: stride must be positive")
	// ErrRaggedBuffer 버퍼 길이가 stride의 배수가 아님
	ErrRaggedBuffer = errors.New("pdqsort: buffer length is not a multiple of stride")
	// ErrAllocFailed 힙정렬 폴백용 임시 레코드를 할당하지 못함.
	// 이 경우 버퍼는 입력의 순열이지만 정렬되어 있지는 않다.
	ErrAllocFailed = errors.New("pdqsort: fallback record allocation failed")
)
