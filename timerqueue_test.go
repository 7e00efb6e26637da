package gimgen

import (
	"testing"
	"time"
)

func TestTimerQueue(t *testing.T) {
	at := func(r rune) time.Time { return time.Unix(int64(r), 0) }

	t.Run("Overall", func(t *testing.T) {
		var q timerqueue
		var seq uint64

		push := func(r rune) {
			seq++
			q.Push(&timer{when: at(r), seq: seq})
		}

		for _, r := range "hgfedcba" {
			push(r)
		}

		for _, r := range "abcd" {
			if u := q.Pop(); !u.when.Equal(at(r)) {
				t.FailNow()
			}
		}

		for _, r := range "kji" {
			push(r)
		}

		push('d')

		if u := q.Pop(); !u.when.Equal(at('d')) {
			t.FailNow()
		}

		push('g')
		push('f')

		for _, r := range "effgghijk" {
			if u := q.Pop(); !u.when.Equal(at(r)) {
				t.FailNow()
			}
		}

		if !q.Empty() {
			t.FailNow()
		}
	})
	t.Run("FIFO", func(t *testing.T) {
		var q timerqueue

		u := &timer{when: at('a'), seq: 1}
		v := &timer{when: at('a'), seq: 2}
		w := &timer{when: at('a'), seq: 3}

		q.Push(w)
		q.Push(u)
		q.Push(v)

		if q.Pop() != u || q.Pop() != v || q.Pop() != w {
			t.FailNow()
		}
	})
	t.Run("Remove", func(t *testing.T) {
		var q timerqueue

		u := &timer{when: at('a'), seq: 1}
		v := &timer{when: at('b'), seq: 2}

		q.Push(u)
		q.Push(v)

		if !q.Remove(u) || q.Remove(u) || q.Len() != 1 || q.Peek() != v {
			t.FailNow()
		}
	})
}
