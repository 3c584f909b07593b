package compose

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"travelrag/internal/domain"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
	angleLinkRe    = regexp.MustCompile(`<(https?://[^>\s]+)>`)
)

// Link is a labeled URL extracted from response text.
type Link struct {
	Label string
	URL   string
}

// ExtractLinks collects markdown-style and angle-bracket links in order of
// appearance, deduplicated by (label, url). Angle-bracket links use the URL
// as their label.
func ExtractLinks(text string) []Link {
	var links []Link
	seen := make(map[Link]struct{})
	add := func(l Link) {
		if _, dup := seen[l]; dup {
			return
		}
		seen[l] = struct{}{}
		links = append(links, l)
	}
	for _, m := range markdownLinkRe.FindAllStringSubmatch(text, -1) {
		add(Link{Label: m[1], URL: m[2]})
	}
	for _, m := range angleLinkRe.FindAllStringSubmatch(text, -1) {
		add(Link{Label: m[1], URL: m[1]})
	}
	return links
}

// LinkChecker verifies that extracted links are reachable. Checks are bounded
// by a per-link timeout and a hard cap on the number of links probed, so a
// link-heavy response cannot stall the pipeline.
type LinkChecker struct {
	client   *http.Client
	maxLinks int
	logger   *zap.Logger
}

// NewLinkChecker creates a checker with the given per-link timeout and cap.
func NewLinkChecker(timeout time.Duration, maxLinks int, logger *zap.Logger) *LinkChecker {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	if maxLinks <= 0 {
		maxLinks = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkChecker{
		client:   &http.Client{Timeout: timeout},
		maxLinks: maxLinks,
		logger:   logger,
	}
}

// Verify extracts links from the text and probes each one. Unreachable links
// are reported, not removed; callers surface only the reachable ones as
// verified sources.
func (c *LinkChecker) Verify(ctx context.Context, text string) []domain.LinkStatus {
	links := ExtractLinks(text)
	if len(links) > c.maxLinks {
		links = links[:c.maxLinks]
	}
	statuses := make([]domain.LinkStatus, 0, len(links))
	for _, link := range links {
		ok := c.reachable(ctx, link.URL)
		if !ok {
			c.logger.Debug("link unreachable", zap.String("url", link.URL))
		}
		statuses = append(statuses, domain.LinkStatus{Label: link.Label, URL: link.URL, Reachable: ok})
	}
	return statuses
}

// reachable sends a HEAD request, falling back to GET when the server rejects
// HEAD (405, 403 or other 4xx). Redirects are followed; any status in
// [200,400) counts as reachable.
func (c *LinkChecker) reachable(ctx context.Context, url string) bool {
	status, err := c.probe(ctx, http.MethodHead, url)
	if err != nil {
		return false
	}
	if status >= 200 && status < 400 {
		return true
	}
	if status >= 400 && status < 500 {
		status, err = c.probe(ctx, http.MethodGet, url)
		if err != nil {
			return false
		}
		return status >= 200 && status < 400
	}
	return false
}

func (c *LinkChecker) probe(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
