package extraction

import "iter"

// CappedList is a bounded view over a longer sequence.
// len(Shown) == min(TotalCount, cap) and Shown keeps sequence order.
type CappedList[T any] struct {
	Shown      []T
	TotalCount int
}

// Capped consumes seq once, counting every element and keeping the first k.
// A negative k is treated as zero.
func Capped[T any](seq iter.Seq[T], k int) CappedList[T] {
	if k < 0 {
		k = 0
	}
	list := CappedList[T]{Shown: []T{}}
	for v := range seq {
		if list.TotalCount < k {
			list.Shown = append(list.Shown, v)
		}
		list.TotalCount++
	}
	return list
}

// Remaining is the number of entries counted but not shown.
func (l CappedList[T]) Remaining() int {
	return l.TotalCount - len(l.Shown)
}

// Truncated reports whether any entries were dropped by the cap.
func (l CappedList[T]) Truncated() bool {
	return l.Remaining() > 0
}
