package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"

	apierrors "github.com/storefront/storechat/internal/errors"
	"github.com/storefront/storechat/internal/models"
)

// mockHTTPClient implements tls_client.HttpClient for testing
type mockHTTPClient struct {
	doFunc     func(req *fhttp.Request) (*fhttp.Response, error)
	calls      int
	idleClosed bool
}

func (m *mockHTTPClient) GetCookies(u *url.URL) []*fhttp.Cookie          { return nil }
func (m *mockHTTPClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}
func (m *mockHTTPClient) SetCookieJar(jar fhttp.CookieJar)               {}
func (m *mockHTTPClient) GetCookieJar() fhttp.CookieJar                  { return nil }
func (m *mockHTTPClient) SetProxy(proxyUrl string) error                 { return nil }
func (m *mockHTTPClient) GetProxy() string                               { return "" }
func (m *mockHTTPClient) SetFollowRedirect(followRedirect bool)          {}
func (m *mockHTTPClient) GetFollowRedirect() bool                        { return false }
func (m *mockHTTPClient) CloseIdleConnections()                          { m.idleClosed = true }
func (m *mockHTTPClient) Get(url string) (*fhttp.Response, error)        { return nil, nil }
func (m *mockHTTPClient) Head(url string) (*fhttp.Response, error)       { return nil, nil }
func (m *mockHTTPClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	return nil, nil
}
func (m *mockHTTPClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }

func (m *mockHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.calls++
	if m.doFunc != nil {
		return m.doFunc(req)
	}
	return nil, errors.New("no response configured")
}

func respond(status int, body string) func(req *fhttp.Request) (*fhttp.Response, error) {
	return func(req *fhttp.Request) (*fhttp.Response, error) {
		return &fhttp.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func newTestClient(t *testing.T, mock *mockHTTPClient, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithHTTPClient(mock)}, opts...)
	client, err := NewClient("http://backend.test:8000/", opts...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
		wantURL string
	}{
		{name: "loopback default", baseURL: models.DefaultBackendURL, wantURL: models.DefaultBackendURL},
		{name: "trailing slash trimmed", baseURL: "https://shop.example.com/", wantURL: "https://shop.example.com"},
		{name: "missing scheme", baseURL: "localhost:8000", wantErr: true},
		{name: "empty", baseURL: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, WithHTTPClient(&mockHTTPClient{}))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			if client.BaseURL() != tt.wantURL {
				t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), tt.wantURL)
			}
		})
	}
}

func TestNewClient_DefaultTransport(t *testing.T) {
	client, err := NewClient(models.DefaultBackendURL, WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if client.httpClient == nil {
		t.Fatal("expected a default HTTP client")
	}
	if client.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.timeout)
	}
	client.Close()
}

func TestClient_Chat_Request(t *testing.T) {
	mock := &mockHTTPClient{}
	mock.doFunc = func(req *fhttp.Request) (*fhttp.Response, error) {
		if req.Method != fhttp.MethodPost {
			t.Errorf("Method = %s, want POST", req.Method)
		}
		if req.URL.String() != "http://backend.test:8000/chat" {
			t.Errorf("URL = %s", req.URL.String())
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		if req.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}

		var payload map[string]any
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if len(payload) != 1 || payload["question"] != "What is my top seller?" {
			t.Errorf("payload = %v", payload)
		}

		return respond(200, `{"answer": "42"}`)(req)
	}

	client := newTestClient(t, mock)
	resp, err := client.Chat(context.Background(), "What is my top seller?")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if resp.Text() != "42" {
		t.Errorf("Text() = %q, want 42", resp.Text())
	}
	if mock.calls != 1 {
		t.Errorf("expected exactly one request, got %d", mock.calls)
	}
}

func TestClient_Chat_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		doFunc      func(req *fhttp.Request) (*fhttp.Response, error)
		wantText    string
		wantErrText string
		check       func(t *testing.T, err error)
	}{
		{
			name:     "answer",
			doFunc:   respond(200, `{"answer":"Blue Hoodie"}`),
			wantText: "Blue Hoodie",
		},
		{
			name:     "empty object falls back to placeholder",
			doFunc:   respond(200, `{}`),
			wantText: models.NoAnswerPlaceholder,
		},
		{
			name:     "null answer falls back to placeholder",
			doFunc:   respond(201, `{"answer":null}`),
			wantText: models.NoAnswerPlaceholder,
		},
		{
			name:     "non-object body falls back to placeholder",
			doFunc:   respond(200, `["a","b"]`),
			wantText: models.NoAnswerPlaceholder,
		},
		{
			name:        "server error",
			doFunc:      respond(500, `{"detail":"boom"}`),
			wantErrText: "HTTP 500",
			check: func(t *testing.T, err error) {
				if apierrors.GetHTTPStatus(err) != 500 {
					t.Errorf("GetHTTPStatus() = %d", apierrors.GetHTTPStatus(err))
				}
				if apierrors.GetResponseBody(err) != `{"detail":"boom"}` {
					t.Errorf("GetResponseBody() = %q", apierrors.GetResponseBody(err))
				}
			},
		},
		{
			name:        "not found ignores body content",
			doFunc:      respond(404, `{"answer":"should not be used"}`),
			wantErrText: "HTTP 404",
		},
		{
			name: "transport failure",
			doFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
				return nil, errors.New("network down")
			},
			wantErrText: "network down",
			check: func(t *testing.T, err error) {
				if !apierrors.IsNetworkError(err) {
					t.Errorf("expected network error, got %T", err)
				}
			},
		},
		{
			name:        "invalid JSON",
			doFunc:      respond(200, `<html>oops</html>`),
			wantErrText: "parse error: response body is not valid JSON",
			check: func(t *testing.T, err error) {
				if !errors.Is(err, apierrors.ErrInvalidResponse) {
					t.Error("expected ErrInvalidResponse")
				}
			},
		},
		{
			name:        "empty body",
			doFunc:      respond(200, ``),
			wantErrText: "parse error: response body is not valid JSON",
		},
		{
			name: "deadline",
			doFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
				return nil, &url.Error{Op: "Post", URL: req.URL.String(), Err: context.DeadlineExceeded}
			},
			check: func(t *testing.T, err error) {
				if !apierrors.IsTimeoutError(err) {
					t.Errorf("expected timeout error, got %T: %v", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, &mockHTTPClient{doFunc: tt.doFunc})
			resp, err := client.Chat(context.Background(), "question")

			if tt.wantText != "" {
				if err != nil {
					t.Fatalf("Chat returned error: %v", err)
				}
				if resp.Text() != tt.wantText {
					t.Errorf("Text() = %q, want %q", resp.Text(), tt.wantText)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErrText != "" && apierrors.Describe(err) != tt.wantErrText {
				t.Errorf("Describe() = %q, want %q", apierrors.Describe(err), tt.wantErrText)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestClient_Chat_EmptyQuestion(t *testing.T) {
	mock := &mockHTTPClient{doFunc: respond(200, `{"answer":"x"}`)}
	client := newTestClient(t, mock)

	_, err := client.Chat(context.Background(), "")
	if !errors.Is(err, apierrors.ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
	if mock.calls != 0 {
		t.Errorf("no request expected, got %d", mock.calls)
	}
}

func TestClient_Close(t *testing.T) {
	mock := &mockHTTPClient{doFunc: respond(200, `{"answer":"x"}`)}
	client := newTestClient(t, mock)

	client.Close()
	client.Close()

	if !client.IsClosed() {
		t.Error("expected client to be closed")
	}
	if !mock.idleClosed {
		t.Error("expected idle connections to be closed")
	}

	_, err := client.Chat(context.Background(), "hello")
	if !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("expected ErrClientClosed, got %v", err)
	}
	if mock.calls != 0 {
		t.Errorf("no request expected after Close, got %d", mock.calls)
	}
}

func TestClient_TimeoutAppliesDeadline(t *testing.T) {
	mock := &mockHTTPClient{}
	mock.doFunc = func(req *fhttp.Request) (*fhttp.Response, error) {
		if _, ok := req.Context().Deadline(); !ok {
			t.Error("expected request context to carry a deadline")
		}
		return respond(200, `{"answer":"ok"}`)(req)
	}

	client := newTestClient(t, mock, WithTimeout(2*time.Second))
	if _, err := client.Chat(context.Background(), "hello"); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
}

func TestClient_Ping(t *testing.T) {
	mock := &mockHTTPClient{}
	mock.doFunc = func(req *fhttp.Request) (*fhttp.Response, error) {
		if req.Method != fhttp.MethodGet {
			t.Errorf("Method = %s, want GET", req.Method)
		}
		if req.URL.Path != "/ping" {
			t.Errorf("Path = %s, want /ping", req.URL.Path)
		}
		return respond(200, `{"message":"Backend is running!!!"}`)(req)
	}

	client := newTestClient(t, mock)
	resp, err := client.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
	if resp.Message != "Backend is running!!!" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestClient_Ping_Errors(t *testing.T) {
	client := newTestClient(t, &mockHTTPClient{doFunc: respond(503, "")})
	if _, err := client.Ping(context.Background()); apierrors.GetHTTPStatus(err) != 503 {
		t.Errorf("expected HTTP 503, got %v", err)
	}

	client = newTestClient(t, &mockHTTPClient{doFunc: respond(200, "pong")})
	if _, err := client.Ping(context.Background()); !apierrors.IsParseError(err) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseChatResponse(t *testing.T) {
	tests := []struct {
		body      string
		wantErr   bool
		hasAnswer bool
		answer    string
	}{
		{body: `{"answer":"42"}`, hasAnswer: true, answer: "42"},
		{body: `{"answer":""}`, hasAnswer: true, answer: ""},
		{body: `{"answer":7}`, hasAnswer: true, answer: "7"},
		{body: `{"reply":"x"}`},
		{body: `null`},
		{body: `{"answer":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			resp, err := ParseChatResponse([]byte(tt.body))
			if tt.wantErr {
				if !apierrors.IsParseError(err) {
					t.Fatalf("expected parse error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.HasAnswer != tt.hasAnswer || resp.Answer != tt.answer {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}
