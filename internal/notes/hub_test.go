package notes

import "testing"

func TestHubKeepsLatestValue(t *testing.T) {
	h := newHub[int]()
	ch, cancel := h.add(0)
	defer cancel()

	h.broadcast(1)
	h.broadcast(2)
	h.broadcast(3)

	if got := <-ch; got != 3 {
		t.Fatalf("expected latest value 3, got %d", got)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	h := newHub[int]()
	ch, cancel := h.add(7)
	cancel()
	cancel()
	if v := <-ch; v != 7 {
		t.Fatalf("expected buffered initial value, got %d", v)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	h.broadcast(1)
}

func TestHubCloseClosesAllSubscribers(t *testing.T) {
	h := newHub[string]()
	a, _ := h.add("a")
	b, cancelB := h.add("b")
	h.close()
	h.close()
	cancelB()

	for _, ch := range []<-chan string{a, b} {
		for range ch {
		}
	}
	late, _ := h.add("late")
	if _, ok := <-late; ok {
		t.Fatalf("expected closed channel after hub close")
	}
}
