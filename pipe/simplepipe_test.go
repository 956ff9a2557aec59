package pipe

import (
	"errors"
	"testing"

	"go.uber.org/multierr"

	"github.com/hearthy-oss/hearthproxy/frame"
)

func TestSimplePipeForwardsAToB(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	NewSimplePipe(a, b, DefaultBufSize, nil, nil)

	a.queue([]byte("hello"))
	a.deliverPull()
	b.deliverPush()

	if string(b.outbound) != "hello" {
		t.Errorf("b.outbound = %q, want %q", b.outbound, "hello")
	}
}

func TestSimplePipeForwardsBToA(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	NewSimplePipe(a, b, DefaultBufSize, nil, nil)

	b.queue([]byte("world"))
	b.deliverPull()
	a.deliverPush()

	if string(a.outbound) != "world" {
		t.Errorf("a.outbound = %q, want %q", a.outbound, "world")
	}
}

func TestSimplePipeClosePropagatesOnceDrained(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	NewSimplePipe(a, b, DefaultBufSize, nil, nil)

	a.Close("test close")
	if !b.closed {
		t.Fatal("expected b to close once a closed with nothing buffered for it")
	}
	if b.closeMsg != "remote closed" {
		t.Errorf("b.closeMsg = %q", b.closeMsg)
	}
}

func TestSimplePipeCloseWaitsForDrain(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	NewSimplePipe(a, b, DefaultBufSize, nil, nil)

	a.queue([]byte("pending for b"))
	a.deliverPull()

	a.Close("test close")
	if b.closed {
		t.Fatal("b should not close yet, it still has buffered data destined for it")
	}

	b.deliverPush()
	if string(b.outbound) != "pending for b" {
		t.Fatalf("b.outbound = %q", b.outbound)
	}
	b.deliverPush()
	if !b.closed {
		t.Fatal("b should close once its buffer drains after the remote closed")
	}
}

func TestSimplePipeCloseClosesBothEndpoints(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	p := NewSimplePipe(a, b, DefaultBufSize, nil, nil)

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatalf("expected both endpoints closed, a=%v b=%v", a.closed, b.closed)
	}
}

func TestSimplePipeCloseCollectsBothFlushErrors(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	p := NewSimplePipe(a, b, DefaultBufSize, nil, nil)

	// Queue data in both directions without delivering the matching
	// push events, so each side's buffer still holds bytes destined
	// for the other when Close is called.
	b.queue([]byte("for a"))
	b.deliverPull()
	a.queue([]byte("for b"))
	a.deliverPull()

	errA := errors.New("a flush failed")
	errB := errors.New("b flush failed")
	a.pushErr = errA
	b.pushErr = errB

	err := p.Close()
	if err == nil {
		t.Fatal("expected Close to report both flush errors")
	}
	got := multierr.Errors(err)
	if len(got) != 2 {
		t.Fatalf("expected 2 collected errors, got %d: %v", len(got), got)
	}
	if !a.closed || !b.closed {
		t.Fatalf("expected both endpoints closed despite flush errors, a=%v b=%v", a.closed, b.closed)
	}
}

func TestSimplePipeOnPullCallback(t *testing.T) {
	a := newFakeEndpoint("a")
	b := newFakeEndpoint("b")
	var gotEpid, gotBytes int
	onPull := func(epid int, buf *frame.RingBuffer, nBytes int) {
		gotEpid = epid
		gotBytes = nBytes
	}
	NewSimplePipe(a, b, DefaultBufSize, onPull, nil)

	a.queue([]byte("abc"))
	a.deliverPull()

	if gotEpid != 0 {
		t.Errorf("epid = %d, want 0", gotEpid)
	}
	if gotBytes != 3 {
		t.Errorf("nBytes = %d, want 3", gotBytes)
	}
}
