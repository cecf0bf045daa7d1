package pdqsort

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

type swapFunc func(a, b []byte)

// View 바이트 버퍼를 stride 바이트짜리 고정 크기 레코드의 연속으로 본다.
// 버퍼의 소유권은 호출자에게 있고, View는 내용을 제자리에서 교환만 한다.
type View struct {
	buf    []byte
	stride int
	n      int
	swap   swapFunc
}

// NewView buf를 len(buf)/stride개의 레코드로 본다.
func NewView(buf []byte, stride int) (View, error) {
	if len(buf) == 0 {
		return View{buf: buf, stride: stride}, nil
	}
	if stride <= 0 {
		return View{}, errors.Wrapf(ErrInvalidStride, "stride %d", stride)
	}
	if len(buf)%stride != 0 {
		return View{}, errors.Wrapf(ErrRaggedBuffer, "len %d, stride %d", len(buf), stride)
	}
	return View{
		buf:    buf,
		stride: stride,
		n:      len(buf) / stride,
		swap:   pickSwap(stride),
	}, nil
}

// Len 레코드 개수
func (v View) Len() int { return v.n }

// Stride 레코드 하나의 바이트 크기
func (v View) Stride() int { return v.stride }

// At i번째 레코드. 반환된 슬라이스는 버퍼를 가리키며 용량이 stride로 잘려 있다.
func (v View) At(i int) []byte {
	off := i * v.stride
	return v.buf[off : off+v.stride : off+v.stride]
}

// Swap i번째와 j번째 레코드를 바이트 단위로 정확히 맞바꾼다.
func (v View) Swap(i, j int) {
	if i == j {
		return
	}
	v.swap(v.At(i), v.At(j))
}

// pickSwap stride에 맞는 교환 단위를 한 번만 고른다.
// 워드 단위는 속도만 다를 뿐 결과는 바이트 교환과 같다.
func pickSwap(stride int) swapFunc {
	switch {
	case stride%8 == 0:
		return swapWords64
	case stride%4 == 0:
		return swapWords32
	default:
		return swapBytes
	}
}

func swapWords64(a, b []byte) {
	for n := len(a); n > 0; n -= 8 {
		x := binary.LittleEndian.Uint64(a[n-8:])
		binary.LittleEndian.PutUint64(a[n-8:], binary.LittleEndian.Uint64(b[n-8:]))
		binary.LittleEndian.PutUint64(b[n-8:], x)
	}
}

func swapWords32(a, b []byte) {
	for n := len(a); n > 0; n -= 4 {
		x := binary.LittleEndian.Uint32(a[n-4:])
		binary.LittleEndian.PutUint32(a[n-4:], binary.LittleEndian.Uint32(b[n-4:]))
		binary.LittleEndian.PutUint32(b[n-4:], x)
	}
}

func swapBytes(a, b []byte) {
	for n := len(a) - 1; n >= 0; n-- {
		a[n], b[n] = b[n], a[n]
	}
}
