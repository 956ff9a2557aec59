package frame

import (
	"bytes"
	"testing"

	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/schema"
)

func buildTestHeader(t *testing.T, serviceID, methodID, token uint64, size uint64) *schema.MessageValue {
	t.Helper()
	headerType, ok := messages.Registry.Lookup("BnetPacketHeader")
	if !ok {
		t.Fatal("BnetPacketHeader not registered")
	}
	h := schema.NewValue(headerType)
	h.Set("ServiceId", serviceID)
	h.Set("MethodId", methodID)
	h.Set("Token", token)
	h.Set("Size", size)
	h.Set("Status", uint64(0))
	return h
}

func TestEnvelopeSplitterSingleFrame(t *testing.T) {
	body := []byte("payload")
	header := buildTestHeader(t, 1, 2, 99, uint64(len(body)))

	wire, err := EncodeEnvelopeFrame(header, body)
	if err != nil {
		t.Fatalf("EncodeEnvelopeFrame: %v", err)
	}

	s, err := NewEnvelopeSplitter(DefaultEnvelopeCapacity)
	if err != nil {
		t.Fatalf("NewEnvelopeSplitter: %v", err)
	}
	if err := s.Feed(wire); err != nil {
		t.Fatalf("Feed: %v", err)
	}

	frame, ok, err := s.PullSegment()
	if err != nil {
		t.Fatalf("PullSegment: %v", err)
	}
	if !ok {
		t.Fatal("expected a frame")
	}
	if !bytes.Equal(frame.Body, body) {
		t.Errorf("body = %q, want %q", frame.Body, body)
	}
	token, _ := frame.Header.Get("Token")
	if token.(uint64) != 99 {
		t.Errorf("token = %v, want 99", token)
	}

	if _, ok, _ := s.PullSegment(); ok {
		t.Fatal("expected no more frames")
	}
}

func TestEnvelopeSplitterPartialFeed(t *testing.T) {
	body := []byte("another payload")
	header := buildTestHeader(t, 254, 0, 5, uint64(len(body)))
	wire, err := EncodeEnvelopeFrame(header, body)
	if err != nil {
		t.Fatalf("EncodeEnvelopeFrame: %v", err)
	}

	s, err := NewEnvelopeSplitter(DefaultEnvelopeCapacity)
	if err != nil {
		t.Fatalf("NewEnvelopeSplitter: %v", err)
	}

	for i := 0; i < len(wire); i++ {
		if err := s.Feed(wire[i : i+1]); err != nil {
			t.Fatalf("Feed byte %d: %v", i, err)
		}
		frame, ok, err := s.PullSegment()
		if err != nil {
			t.Fatalf("PullSegment at byte %d: %v", i, err)
		}
		if ok {
			if !bytes.Equal(frame.Body, body) {
				t.Errorf("body = %q, want %q", frame.Body, body)
			}
			return
		}
	}
	t.Fatal("frame never completed")
}
