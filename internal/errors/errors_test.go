package errors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestStatusError(t *testing.T) {
	err := NewStatusError(500, "/chat")

	expected := "HTTP 500"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if got := GetHTTPStatus(err); got != 500 {
		t.Errorf("GetHTTPStatus() = %d, want 500", got)
	}
	if got := GetEndpoint(err); got != "/chat" {
		t.Errorf("GetEndpoint() = %s, want /chat", got)
	}
}

func TestStatusError_BodyDoesNotChangeMessage(t *testing.T) {
	err := NewStatusErrorWithBody(502, "/chat", `{"detail":"upstream down"}`)

	if err.Error() != "HTTP 502" {
		t.Errorf("Error() = %s, want HTTP 502", err.Error())
	}
	if GetResponseBody(err) != `{"detail":"upstream down"}` {
		t.Errorf("GetResponseBody() = %q", GetResponseBody(err))
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("network down")
	err := NewNetworkErrorWithEndpoint("chat", "/chat", cause)

	if err.Error() != "network down" {
		t.Errorf("Error() = %s, want %s", err.Error(), "network down")
	}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNetworkError should see through wrapping")
	}

	bare := NewNetworkError("ping", nil)
	if bare.Error() != "network error during ping" {
		t.Errorf("Error() = %s", bare.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutErrorWithEndpoint("/chat", context.DeadlineExceeded)

	expected := "request to /chat timed out"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should unwrap to its cause")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("response body is not valid JSON", "/chat")

	expected := "parse error: response body is not valid JSON"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
	if !err.Is(NewParseError("other", "")) {
		t.Error("ParseError should match another ParseError")
	}
	if err.Is(NewStatusError(400, "")) {
		t.Error("ParseError should not match a different type")
	}
}

func TestFromTransport(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNil     bool
		wantTimeout bool
		wantNetwork bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "deadline", err: fmt.Errorf("post: %w", context.DeadlineExceeded), wantTimeout: true},
		{name: "canceled", err: context.Canceled, wantNetwork: true},
		{name: "refused", err: errors.New("connection refused"), wantNetwork: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTransport("chat", "/chat", tt.err)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if IsTimeoutError(got) != tt.wantTimeout {
				t.Errorf("IsTimeoutError() = %v, want %v", IsTimeoutError(got), tt.wantTimeout)
			}
			if IsNetworkError(got) != tt.wantNetwork {
				t.Errorf("IsNetworkError() = %v, want %v", IsNetworkError(got), tt.wantNetwork)
			}
			if GetEndpoint(got) != "/chat" {
				t.Errorf("GetEndpoint() = %q, want /chat", GetEndpoint(got))
			}
		})
	}
}

type jsonFailure struct{}

func (jsonFailure) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot marshal")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "status error", in: NewStatusError(500, "/chat"), want: "HTTP 500"},
		{name: "wrapped status error", in: fmt.Errorf("chat: %w", NewStatusError(404, "/chat")), want: "HTTP 404"},
		{name: "plain error", in: errors.New("network down"), want: "network down"},
		{name: "network error", in: NewNetworkError("chat", errors.New("network down")), want: "network down"},
		{name: "parse error", in: NewParseError("bad json", "/chat"), want: "parse error: bad json"},
		{name: "string", in: "socket hang up", want: "socket hang up"},
		{name: "empty string", in: "", want: ""},
		{name: "nil", in: nil, want: UnknownErrorText},
		{name: "map", in: map[string]int{"code": 7}, want: `{"code":7}`},
		{name: "number", in: 42, want: "42"},
		{name: "unserializable channel", in: make(chan int), want: UnknownErrorText},
		{name: "unserializable float", in: math.Inf(1), want: UnknownErrorText},
		{name: "marshaler failure", in: jsonFailure{}, want: UnknownErrorText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.in); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicates_NonMatching(t *testing.T) {
	err := errors.New("plain")

	if IsStatusError(err) || IsNetworkError(err) || IsTimeoutError(err) || IsParseError(err) {
		t.Error("plain error should not match any typed predicate")
	}
	if GetHTTPStatus(err) != 0 {
		t.Error("GetHTTPStatus should be 0 for plain error")
	}
	if GetEndpoint(err) != "" {
		t.Error("GetEndpoint should be empty for plain error")
	}
	if !IsCanceled(fmt.Errorf("x: %w", context.Canceled)) {
		t.Error("IsCanceled should see through wrapping")
	}
}
