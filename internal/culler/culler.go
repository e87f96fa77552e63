// Package culler checks that the sources referenced by a document's items
// are still reachable.
package culler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/folio/internal/media"
	"github.com/nikbrunner/folio/internal/model"
)

// Status represents the health of an item source.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response, or the local file exists
	Dead                      // 404, 410, or missing local file
	Unreachable               // timeout, DNS failure, connection refused, etc.
	Invalid                   // the source cannot be resolved at all
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	case Unreachable:
		return "unreachable"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Target is one item source to check.
type Target struct {
	Section string
	Index   int // position within the section's items
	Item    model.Item
}

// Result holds the check result for a single target.
type Result struct {
	Target     Target
	Status     Status
	StatusCode int    // HTTP status code (0 if no request was made)
	Error      string // readable reason for non-healthy results
}

// ProgressFunc is called after each source is checked.
// completed is the number of sources checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Options configure a check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration

	// BaseURL resolves relative sources of a document served over HTTP.
	BaseURL *url.URL
	// BaseDir resolves relative sources of a local document when BaseURL is nil.
	BaseDir string

	Client     *http.Client // optional; built from Timeout when nil
	OnProgress ProgressFunc
}

// Targets lists the checkable items of doc. Items of an unsupported kind
// and items without a source are skipped.
func Targets(doc *model.Document) []Target {
	var targets []Target
	for _, s := range doc.Sections {
		for i, it := range s.Items {
			if it.Kind() == model.KindUnsupported || strings.TrimSpace(it.Src) == "" {
				continue
			}
			targets = append(targets, Target{Section: s.Name, Index: i, Item: it})
		}
	}
	return targets
}

// CheckSources checks all targets concurrently and returns results in
// target order.
func CheckSources(ctx context.Context, targets []Target, opts Options) []Result {
	if len(targets) == 0 {
		return nil
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	c := checker{client: client, baseURL: opts.BaseURL, baseDir: opts.BaseDir}

	results := make([]Result, len(targets))
	jobs := make(chan int, len(targets))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = c.check(ctx, targets[idx])

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(targets))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// Summary counts results by status.
func Summary(results []Result) map[Status]int {
	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

type checker struct {
	client  *http.Client
	baseURL *url.URL
	baseDir string
}

func (c checker) check(ctx context.Context, t Target) Result {
	result := Result{Target: t}
	src := strings.TrimSpace(t.Item.Src)

	if t.Item.Kind() == model.KindYouTube {
		if _, ok := media.ResolveVideoID(src); !ok {
			result.Status = Invalid
			result.Error = media.InvalidLinkMessage
			return result
		}
	}

	u, err := url.Parse(src)
	if err != nil {
		result.Status = Invalid
		result.Error = "Unparseable source"
		return result
	}

	if !u.IsAbs() {
		if c.baseURL == nil {
			return c.checkFile(t, u.Path)
		}
		u = c.baseURL.ResolveReference(u)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		result.Status = Invalid
		result.Error = "Unsupported scheme " + u.Scheme
		return result
	}

	return c.checkHTTP(ctx, t, u.String())
}

func (c checker) checkHTTP(ctx context.Context, t Target, target string) Result {
	result := Result{Target: t}

	// Try HEAD first, some servers only answer GET
	resp, err := c.do(ctx, http.MethodHead, target)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, target)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.Status = Dead
	default:
		// 5xx, 403 and friends may be temporary or auth-gated
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func (c checker) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

func (c checker) checkFile(t Target, rel string) Result {
	result := Result{Target: t}

	p := filepath.Join(c.baseDir, filepath.FromSlash(rel))

	switch _, err := os.Stat(p); {
	case err == nil:
		result.Status = Healthy
	case errors.Is(err, os.ErrNotExist):
		result.Status = Dead
		result.Error = "File not found"
	default:
		result.Status = Unreachable
		result.Error = err.Error()
	}
	return result
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Canceled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
