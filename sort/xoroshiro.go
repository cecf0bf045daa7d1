package main

import "math/bits"

// xoroshiro128+ 입력 생성기. 같은 시드면 어느 플랫폼에서든 같은 입력이 나온다.
// math/rand.Source64를 만족한다.
type xoroshiro struct {
	s0, s1 uint64
}

// 기본 시드: π, φ
const (
	defaultSeed0 = 314159265
	defaultSeed1 = 1618033989
)

func newXoroshiro(s0, s1 uint64) *xoroshiro {
	x := &xoroshiro{}
	x.seed(s0, s1)
	return x
}

// seed 상태가 전부 0이면 0만 나오므로 한 비트를 켠다.
func (x *xoroshiro) seed(s0, s1 uint64) {
	if s0 == 0 && s1 == 0 {
		s1 = 1
	}
	x.s0, x.s1 = s0, s1
}

// Seed rand.Source 구현. splitmix64로 64비트 시드를 두 상태 워드로 펼친다.
func (x *xoroshiro) Seed(seed int64) {
	sm := uint64(seed)
	a := splitmix64(&sm)
	b := splitmix64(&sm)
	x.seed(a, b)
}

func (x *xoroshiro) Uint64() uint64 {
	s0, s1 := x.s0, x.s1
	result := s0 + s1

	s1 ^= s0
	x.s0 = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.s1 = bits.RotateLeft64(s1, 37)
	return result
}

func (x *xoroshiro) Int63() int64 {
	return int64(x.Uint64() >> 1)
}

var jumpPoly = [2]uint64{0xdf900294d8f554a5, 0x170865df4b3201fc}

// Jump 2^64번 호출한 것과 같은 위치로 건너뛴다.
// 실험마다 한 번씩 건너뛰어 서로 겹치지 않는 수열을 쓴다.
func (x *xoroshiro) Jump() {
	var s0, s1 uint64
	for _, poly := range jumpPoly {
		for b := 0; b < 64; b++ {
			if poly&(1<<b) != 0 {
				s0 ^= x.s0
				s1 ^= x.s1
			}
			x.Uint64()
		}
	}
	x.s0, x.s1 = s0, s1
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
