package fp_test

import (
	"errors"
	"testing"

	"github.com/lispkit/lispkit/core/fp"
)

func TestMap(t *testing.T) {
	out, err := fp.Map([]int{1, 2, 3}, func(n int) (int, error) { return n * n, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 4, 9}
	for i, v := range want {
		if out[i] != v {
			t.Errorf("out[%d] = %d, want %d", i, out[i], v)
		}
	}
}

func TestMapStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := fp.Map([]int{1, 2, 3}, func(n int) (int, error) {
		calls++
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	if err != boom {
		t.Fatalf("got %v, want boom", err)
	}
	if calls != 2 {
		t.Errorf("called %d times, want 2 (stop at first error)", calls)
	}
}

func TestFilter(t *testing.T) {
	out, err := fp.Filter([]int{1, 2, 3, 4, 5}, func(n int) (bool, error) { return n%2 == 0, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != 2 || out[1] != 4 {
		t.Errorf("got %v, want [2 4]", out)
	}
}

func TestReduce(t *testing.T) {
	sum, err := fp.Reduce([]int{1, 2, 3, 4}, 0, func(acc, n int) (int, error) { return acc + n, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 10 {
		t.Errorf("got %d, want 10", sum)
	}
}
