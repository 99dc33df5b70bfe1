package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchPage(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
	}{
		{
			name:        "successful fetch",
			htmlContent: `<ul class="event-list"><li>Concierto</li></ul>`,
			statusCode:  http.StatusOK,
		},
		{
			name:        "non-authoritative information is a success",
			htmlContent: `<ul class="event-list"><li>Proxy</li></ul>`,
			statusCode:  http.StatusNonAuthoritativeInfo,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusBadGateway,
			wantError:  true,
		},
		{
			name:        "empty page",
			htmlContent: "",
			statusCode:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("method = %s, want GET", r.Method)
				}
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "ticketwatch") {
					t.Errorf("User-Agent = %q, should contain 'ticketwatch'", userAgent)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			body, err := New().FetchPage(context.Background(), server.URL)

			if tt.wantError {
				if err == nil {
					t.Error("FetchPage() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchPage() unexpected error: %v", err)
			}
			if body != tt.htmlContent {
				t.Errorf("FetchPage() body = %q, want %q", body, tt.htmlContent)
			}
		})
	}
}

func TestFetchPage_InvalidURL(t *testing.T) {
	_, err := New().FetchPage(context.Background(), "://not-a-url")
	if err == nil {
		t.Fatal("FetchPage() expected error for invalid URL")
	}
	if !strings.Contains(err.Error(), "creating request") {
		t.Errorf("error = %v, want 'creating request'", err)
	}
}

func TestFetchPage_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().FetchPage(ctx, server.URL); err == nil {
		t.Error("FetchPage() expected error for canceled context")
	}
}

func TestFetchPage_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	s := New(WithTimeout(50 * time.Millisecond))
	if _, err := s.FetchPage(context.Background(), server.URL); err == nil {
		t.Error("FetchPage() expected timeout error")
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.client == nil {
		t.Fatal("scraper client is nil")
	}
	if s.client.Timeout != Timeout {
		t.Errorf("client timeout = %v, want %v", s.client.Timeout, Timeout)
	}

	custom := &http.Client{}
	if got := New(WithHTTPClient(custom)); got.client != custom {
		t.Error("WithHTTPClient() did not replace the client")
	}
}
