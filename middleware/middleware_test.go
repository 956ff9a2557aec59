package middleware

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/broker"
	"github.com/hearthy-oss/hearthproxy/schema"
)

func pingType(t *testing.T) *schema.MessageType {
	t.Helper()
	r := schema.NewRegistry()
	r.Define("Ping", nil)
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	typ, _ := r.Lookup("Ping")
	return typ
}

func echoHandler(req *schema.MessageValue) ([]*schema.MessageValue, error) {
	return []*schema.MessageValue{req}, nil
}

func slowHandler(req *schema.MessageValue) ([]*schema.MessageValue, error) {
	time.Sleep(200 * time.Millisecond)
	return []*schema.MessageValue{req}, nil
}

func TestLoggingPassesThroughResult(t *testing.T) {
	handler := Logging(zap.NewNop())(echoHandler)
	req := schema.NewValue(pingType(t))

	resp, err := handler(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp) != 1 || resp[0] != req {
		t.Fatalf("expected the request echoed back, got %v", resp)
	}
}

func TestTimeoutPassesWhenFast(t *testing.T) {
	handler := Timeout(500 * time.Millisecond)(echoHandler)
	req := schema.NewValue(pingType(t))

	if _, err := handler(req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestTimeoutFiresWhenSlow(t *testing.T) {
	handler := Timeout(50 * time.Millisecond)(slowHandler)
	req := schema.NewValue(pingType(t))

	if _, err := handler(req); err == nil {
		t.Fatal("expected a timeout error")
	}
}

func TestRetryStopsOnNonTransientError(t *testing.T) {
	calls := 0
	failing := func(req *schema.MessageValue) ([]*schema.MessageValue, error) {
		calls++
		return nil, fmt.Errorf("invalid argument")
	}
	handler := Retry(zap.NewNop(), 3, time.Millisecond)(failing)

	if _, err := handler(schema.NewValue(pingType(t))); err == nil {
		t.Fatal("expected the non-transient error to propagate")
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 call for a non-transient error, got %d", calls)
	}
}

func TestRetryRetriesTransientError(t *testing.T) {
	calls := 0
	flaky := func(req *schema.MessageValue) ([]*schema.MessageValue, error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("connection refused")
		}
		return []*schema.MessageValue{req}, nil
	}
	handler := Retry(zap.NewNop(), 3, time.Millisecond)(flaky)

	resp, err := handler(schema.NewValue(pingType(t)))
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if len(resp) != 1 {
		t.Fatalf("expected one response, got %d", len(resp))
	}
}

func TestChainWrapsOutermostFirst(t *testing.T) {
	chained := Chain(Logging(zap.NewNop()), Timeout(500*time.Millisecond))
	handler := chained(echoHandler)
	req := schema.NewValue(pingType(t))

	resp, err := handler(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp) != 1 || resp[0] != req {
		t.Fatalf("expected the request echoed back, got %v", resp)
	}

	var order []string
	record := func(name string) Middleware {
		return func(next broker.Handler) broker.Handler {
			return func(req *schema.MessageValue) ([]*schema.MessageValue, error) {
				order = append(order, name+".before")
				resp, err := next(req)
				order = append(order, name+".after")
				return resp, err
			}
		}
	}
	if _, err := Chain(record("A"), record("B"))(echoHandler)(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"A.before", "B.before", "B.after", "A.after"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("call order = %v, want %v", order, want)
	}
}
