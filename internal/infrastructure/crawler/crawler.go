package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// Crawler walks same-host links breadth-first from a seed URL, strips
// non-content markup from every page and returns one cleaned Document per
// page. Individual page failures are logged and skipped; only an invalid
// seed is fatal.
type Crawler struct {
	maxDepth   int
	maxPages   int
	excluded   []string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

type Config struct {
	MaxDepth          int
	MaxPages          int
	ExcludedPaths     []string
	RequestsPerSecond float64
	FetchTimeout      time.Duration
}

func New(cfg Config, log *slog.Logger) *Crawler {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 4
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 50
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Crawler{
		maxDepth:   cfg.MaxDepth,
		maxPages:   cfg.MaxPages,
		excluded:   cfg.ExcludedPaths,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		log:        log,
	}
}

type target struct {
	url   *url.URL
	depth int
}

func (c *Crawler) Crawl(ctx context.Context, seedURL string) ([]domain.Document, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || (seed.Scheme != "http" && seed.Scheme != "https") || seed.Host == "" {
		if err == nil {
			err = fmt.Errorf("unsupported url: %s", seedURL)
		}
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse seed url", err)
	}
	seed.Fragment = ""

	queue := []target{{url: seed, depth: 1}}
	visited := map[string]struct{}{seed.String(): {}}
	now := time.Now().UTC()

	var docs []domain.Document
	for len(queue) > 0 && len(docs) < c.maxPages {
		next := queue[0]
		queue = queue[1:]

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		root, err := c.fetch(ctx, next.url)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			c.log.Warn("crawl_page_skipped", "url", next.url.String(), "error", err)
			continue
		}

		text := normalizeWhitespace(collectText(root))
		if text != "" {
			docs = append(docs, domain.Document{
				Content: text,
				Meta: domain.URLMeta{
					MetaBase: domain.MetaBase{Source: next.url.String(), IndexedAt: now},
					Depth:    next.depth,
				},
			})
		}

		if next.depth >= c.maxDepth {
			continue
		}
		for _, link := range c.links(root, next.url) {
			key := link.String()
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, target{url: link, depth: next.depth + 1})
		}
	}
	return docs, nil
}

func (c *Crawler) fetch(ctx context.Context, u *url.URL) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page status: %s", resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return root, nil
}

// links returns same-host, non-excluded targets reachable from the page.
func (c *Crawler) links(root *html.Node, page *url.URL) []*url.URL {
	var out []*url.URL
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				ref, err := url.Parse(strings.TrimSpace(attr.Val))
				if err != nil {
					continue
				}
				resolved := page.ResolveReference(ref)
				resolved.Fragment = ""
				if resolved.Scheme != "http" && resolved.Scheme != "https" {
					continue
				}
				if resolved.Host != page.Host {
					continue
				}
				if c.isExcluded(resolved.Path) {
					continue
				}
				out = append(out, resolved)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

func (c *Crawler) isExcluded(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		for _, excluded := range c.excluded {
			if strings.EqualFold(segment, excluded) {
				return true
			}
		}
	}
	return false
}

var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"nav":      {},
	"header":   {},
	"footer":   {},
	"noscript": {},
	"iframe":   {},
}

func collectText(root *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return b.String()
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
