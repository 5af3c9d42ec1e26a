package duckduckgo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/namehunt/pkg/result"
)

const mockSERP = `<!DOCTYPE html>
<html>
<body>
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title">
    <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fjohnsmith&amp;rut=abc123">John Smith - Software Engineer | LinkedIn</a>
  </h2>
  <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fjohnsmith">John Smith. Software Engineer at Example Corp.</a>
</div>
<div class="result">
  <h2 class="result__title">
    <a class="result__a" href="https://www.instagram.com/johnsmith/">John Smith (@johnsmith)</a>
  </h2>
  <a class="result__snippet">Photos and videos from John Smith</a>
</div>
<div class="result">
  <h2 class="result__title">
    <a class="result__a" href="">Empty href result</a>
  </h2>
</div>
</body>
</html>`

// mockTransport redirects all requests to a test server.
type mockTransport struct {
	mockURL string
}

func (t *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mock, err := url.Parse(t.mockURL)
	if err != nil {
		return nil, err
	}
	req.URL.Scheme = mock.Scheme
	req.URL.Host = mock.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestNew(t *testing.T) {
	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client == nil {
		t.Fatal("New() returned nil client")
	}
	if client.Name() != "duckduckgo" {
		t.Errorf("Name() = %q", client.Name())
	}
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != `"John Smith" site:linkedin.com/in/` {
			t.Errorf("query param = %q", got)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(mockSERP)) //nolint:errcheck // test helper
	}))
	defer server.Close()

	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.httpClient = &http.Client{Transport: &mockTransport{mockURL: server.URL}}

	results, err := client.Search(context.Background(), `"John Smith" site:linkedin.com/in/`)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []result.Result{
		{
			Title:   "John Smith - Software Engineer | LinkedIn",
			Link:    "https://www.linkedin.com/in/johnsmith",
			Snippet: "John Smith. Software Engineer at Example Corp.",
			Source:  result.SourceDuckDuckGo,
		},
		{
			Title:   "John Smith (@johnsmith)",
			Link:    "https://www.instagram.com/johnsmith/",
			Snippet: "Photos and videos from John Smith",
			Source:  result.SourceDuckDuckGo,
		},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.httpClient = &http.Client{Transport: &mockTransport{mockURL: server.URL}}

	_, err = client.Search(context.Background(), "anything")
	if !errors.Is(err, result.ErrRateLimited) {
		t.Errorf("Search() error = %v, want ErrRateLimited", err)
	}
}

func TestSearchChallengePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><div class="anomaly-modal">Please verify</div></html>`)) //nolint:errcheck // test helper
	}))
	defer server.Close()

	client, err := New(context.Background())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	client.httpClient = &http.Client{Transport: &mockTransport{mockURL: server.URL}}

	_, err = client.Search(context.Background(), "anything")
	if !errors.Is(err, result.ErrRateLimited) {
		t.Errorf("Search() error = %v, want ErrRateLimited", err)
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{
			href: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=abc",
			want: "https://example.com/page",
		},
		{
			href: "/l/?uddg=https%3A%2F%2Fexample.com",
			want: "https://example.com",
		},
		{
			href: "https://example.com/direct",
			want: "https://example.com/direct",
		},
		{
			href: "//duckduckgo.com/l/?rut=abc",
			want: "//duckduckgo.com/l/?rut=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			if got := unwrapRedirect(tt.href); got != tt.want {
				t.Errorf("unwrapRedirect(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestParseSERPEmpty(t *testing.T) {
	results, err := parseSERP([]byte("<html><body>No results.</body></html>"))
	if err != nil {
		t.Fatalf("parseSERP() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("parseSERP() = %v, want empty", results)
	}
}
