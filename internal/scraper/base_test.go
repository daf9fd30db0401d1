package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/liveprogress/expectancy/internal/config"
	"github.com/liveprogress/expectancy/internal/sentinel"
)

func testSource(url string) config.Source {
	return config.Source{
		URL:        url,
		TableClass: "wikitable",
		TableIndex: 2,
		Timeout:    time.Second,
		UserAgent:  "expectancy-test",
	}
}

func TestFetch_OK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	body, err := NewFetcher(testSource(srv.URL)).WithClient(srv.Client()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "expectancy-test" {
		t.Errorf("User-Agent = %q, want expectancy-test", gotUA)
	}
}

func TestFetch_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewFetcher(testSource(srv.URL)).Fetch(context.Background())
	if !errors.Is(err, sentinel.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close() // nothing listens on addr any more

	_, err := NewFetcher(testSource(addr)).Fetch(context.Background())
	if !errors.Is(err, sentinel.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		t.Errorf("transport error lost from chain: %v", err)
	}
}

func TestFetch_DeadlineKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewFetcher(testSource(srv.URL)).Fetch(ctx)
	if !errors.Is(err, sentinel.ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded in chain", err)
	}
}

func TestFetch_DefaultTimeout(t *testing.T) {
	src := testSource("http://example.invalid")
	src.Timeout = 0
	if got := NewFetcher(src).client.Timeout; got != config.DefaultTimeout {
		t.Errorf("client timeout = %v, want %v", got, config.DefaultTimeout)
	}
}

func TestScrape_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page(franceJapanRows)))
	}))
	defer srv.Close()

	res, err := New(testSource(srv.URL)).Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("len = %d, want 2 (%v)", len(res), res)
	}
	if res["Japan"].Male != 81.6 {
		t.Errorf("Japan.Male = %v, want 81.6", res["Japan"].Male)
	}
}

func TestScrape_ParseFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	_, err := New(testSource(srv.URL)).Scrape(context.Background())
	if !errors.Is(err, sentinel.ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
}
