package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

func newTestCrawler(t *testing.T, cfg Config) *Crawler {
	t.Helper()
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = 1000
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 2 * time.Second
	}
	return New(cfg, nil)
}

func TestCrawlRejectsInvalidSeed(t *testing.T) {
	c := newTestCrawler(t, Config{})

	for _, seed := range []string{"not-a-url", "ftp://example.com/files", "http://"} {
		_, err := c.Crawl(context.Background(), seed)
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("seed %q: expected invalid input error, got %v", seed, err)
		}
	}
}

func TestCrawlFollowsSameHostLinksWithinDepth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<p>Welcome to the home page with enough words.</p>
			<a href="/docs">docs</a>
			<a href="https://elsewhere.invalid/external">external</a>
		</body></html>`))
	})
	mux.HandleFunc("/docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<p>Documentation body text.</p>
			<a href="/docs/deep">deeper</a>
		</body></html>`))
	})
	mux.HandleFunc("/docs/deep", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Too deep to be visited.</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(t, Config{MaxDepth: 2, MaxPages: 10})
	docs, err := c.Crawl(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 pages, got %d: %+v", len(docs), docs)
	}
	for _, doc := range docs {
		if strings.Contains(doc.Content, "Too deep") {
			t.Fatalf("page beyond max depth was crawled: %q", doc.Content)
		}
	}

	meta, ok := docs[1].Meta.(domain.URLMeta)
	if !ok {
		t.Fatalf("expected url metadata, got %T", docs[1].Meta)
	}
	if meta.Depth != 2 {
		t.Fatalf("expected depth 2, got %d", meta.Depth)
	}
}

func TestCrawlSkipsExcludedPaths(t *testing.T) {
	visitedAdmin := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<p>Index page.</p>
			<a href="/admin/settings">admin</a>
			<a href="/about">about</a>
		</body></html>`))
	})
	mux.HandleFunc("/admin/settings", func(w http.ResponseWriter, _ *http.Request) {
		visitedAdmin = true
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>About us.</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(t, Config{MaxDepth: 3, MaxPages: 10, ExcludedPaths: []string{"admin", "login"}})
	docs, err := c.Crawl(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if visitedAdmin {
		t.Fatal("excluded path was fetched")
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(docs))
	}
}

func TestCrawlStripsNonContentMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><script>var x = 1;</script><style>body{}</style></head>
			<body><nav>Menu</nav><header>Brand</header>
			<main>Actual   page
			content</main>
			<footer>Copyright</footer></body></html>`))
	}))
	defer server.Close()

	c := newTestCrawler(t, Config{MaxDepth: 1, MaxPages: 1})
	docs, err := c.Crawl(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 page, got %d", len(docs))
	}
	if docs[0].Content != "Actual page content" {
		t.Fatalf("unexpected cleaned text: %q", docs[0].Content)
	}
}

func TestCrawlSkipsFailingPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Front page.</p><a href="/broken">broken</a></body></html>`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(t, Config{MaxDepth: 2, MaxPages: 10})
	docs, err := c.Crawl(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected the healthy page only, got %d", len(docs))
	}
}

func TestCrawlHonorsMaxPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Page ` + r.URL.Path + `</p>
			<a href="/a">a</a><a href="/b">b</a><a href="/c">c</a></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestCrawler(t, Config{MaxDepth: 4, MaxPages: 2})
	docs, err := c.Crawl(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected max 2 pages, got %d", len(docs))
	}
}
