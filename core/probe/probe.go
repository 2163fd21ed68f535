package probe

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const sniffLen = 1024

var probesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scouting_image_probes_total",
	Help: "Remote image URL probes by result.",
}, []string{"result"})

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte("\xff\xd8\xff")
)

// Prober validates external image URLs with a ranged GET and remembers the verdict.
type Prober struct {
	client  *http.Client
	results *expirable.LRU[string, bool]
	logger  *zap.Logger
}

// New creates a prober. A nil client gets a default one bounded by the configured timeout.
func New(cfg Config, client *http.Client, logger *zap.Logger) *Prober {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 4
	}
	ttl := cfg.TTLMinutes
	if ttl <= 0 {
		ttl = 60
	}
	size := cfg.MaxEntries
	if size <= 0 {
		size = 512
	}
	if client == nil {
		client = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}

	return &Prober{
		client:  client,
		results: expirable.NewLRU[string, bool](size, nil, time.Duration(ttl)*time.Minute),
		logger:  logger,
	}
}

// Check reports whether rawURL serves a PNG, JPEG or WEBP image.
func (p *Prober) Check(ctx context.Context, rawURL string) bool {
	rawURL = strings.TrimSpace(rawURL)
	if !isHTTP(rawURL) {
		return false
	}

	if ok, found := p.results.Get(rawURL); found {
		probesTotal.WithLabelValues("cached").Inc()
		return ok
	}

	ok := p.fetch(ctx, rawURL)
	p.results.Add(rawURL, ok)
	if ok {
		probesTotal.WithLabelValues("valid").Inc()
	} else {
		probesTotal.WithLabelValues("invalid").Inc()
	}
	return ok
}

// SafeURL returns rawURL when it passes Check and "" otherwise.
func (p *Prober) SafeURL(ctx context.Context, rawURL string) string {
	if p.Check(ctx, rawURL) {
		return strings.TrimSpace(rawURL)
	}
	return ""
}

func (p *Prober) fetch(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Range", "bytes=0-1023")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("Image probe failed", zap.String("url", rawURL), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(resp.Header.Get("Content-Type")), "image/") {
		return false
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, sniffLen))
	if err != nil {
		return false
	}
	return IsImage(head)
}

// IsImage matches the PNG, JPEG and WEBP signatures.
func IsImage(head []byte) bool {
	switch {
	case bytes.HasPrefix(head, pngMagic):
		return true
	case bytes.HasPrefix(head, jpegMagic):
		return true
	case bytes.HasPrefix(head, []byte("RIFF")) && len(head) >= 12 && bytes.Contains(head[:12], []byte("WEBP")):
		return true
	}
	return false
}

func isHTTP(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
