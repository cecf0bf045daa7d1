// Package pdqsort 패턴 회피 퀵소트(pattern-defeating quicksort) 엔진.
//
// 비교 함수 기반의 제자리(in-place) 정렬로, 최악의 경우에도 O(n log n)을 보장하면서
// 정렬됨/역순/중복 많음/거의 정렬됨 같은 흔한 입력에서는 선형에 가깝게 동작한다.
//
// 구성:
//   - 24개 미만 범위: 삽입정렬 (맨 왼쪽 범위는 경계 검사, 그 외는 센티널에 의존)
//   - 피벗: 128개 이하 median-of-3, 그 이상은 ninther
//   - 분할: partitionRight (일반), partitionLeft (왼쪽 경계와 같은 값의 연속 흡수)
//   - 이미 분할된 균형 분할: 부분 삽입정렬로 조기 종료 시도
//   - 심하게 불균형한 분할이 ⌊log2 n⌋번 쌓이면 현재 범위 전체를 힙정렬로 마무리
//
// 타입이 정해진 슬라이스는 Sort / SortFunc, 런타임 stride를 가진 바이트 레코드는
// SortBytes / SortView를 쓴다. 안정 정렬이 아니며, 비교 함수는 호출 동안 고정된
// 전순서(ties 허용)여야 한다. 이를 어기면 결과는 정의되지 않는다(검출하지 않음).
//
// 전역 상태가 없으므로 서로 겹치지 않는 범위에 대한 동시 호출은 안전하다.
// 같은(또는 겹치는) 범위의 동시 호출은 호출자가 막아야 한다.
package pdqsort
