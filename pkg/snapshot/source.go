package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const maxDocumentBytes = 64 << 20

// Source. provides the raw (previous, current) snapshot pair.
type Source interface {
	Fetch(ctx context.Context) (previous, current []RawRecord, err error)
}

type HTTPSource struct {
	previousURL string
	currentURL  string
	client      *http.Client
	limiter     *rate.Limiter
	retry       RetryConfig
	log         *zap.Logger
}

// NewHTTPSource. requestsPerMinute <= 0 disables client-side throttling.
func NewHTTPSource(previousURL, currentURL string, timeout time.Duration, requestsPerMinute int,
	retry RetryConfig, log *zap.Logger) *HTTPSource {
	limit := rate.Inf
	burst := 1
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
		burst = 2
	}
	return &HTTPSource{
		previousURL: previousURL,
		currentURL:  currentURL,
		client:      &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(limit, burst),
		retry:       retry,
		log:         log,
	}
}

// Fetch. downloads both documents concurrently. Either failure cancels the other.
func (s *HTTPSource) Fetch(ctx context.Context) ([]RawRecord, []RawRecord, error) {
	var previous, current []RawRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		previous, err = s.fetchDocument(gctx, s.previousURL)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = s.fetchDocument(gctx, s.currentURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return previous, current, nil
}

func (s *HTTPSource) fetchDocument(ctx context.Context, url string) ([]RawRecord, error) {
	return retryWithBackoff(ctx, s.retry, s.log, func() ([]RawRecord, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newStatusError(url, resp)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
		if err != nil {
			return nil, fmt.Errorf("GET %s: read body: %w", url, err)
		}
		records, err := DecodeRecords(body)
		if err != nil {
			return nil, &permanentError{err: fmt.Errorf("GET %s: decode: %w", url, err)}
		}
		s.log.Debug("snapshot document fetched", zap.String("url", url), zap.Int("records", len(records)))
		return records, nil
	})
}

// FileSource. reads the pair from local JSON files, files ending in .bz2 are decompressed.
type FileSource struct {
	previousPath string
	currentPath  string
}

func NewFileSource(previousPath, currentPath string) *FileSource {
	return &FileSource{previousPath: previousPath, currentPath: currentPath}
}

func (s *FileSource) Fetch(ctx context.Context) ([]RawRecord, []RawRecord, error) {
	previous, err := readDocument(s.previousPath)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	current, err := readDocument(s.currentPath)
	if err != nil {
		return nil, nil, err
	}
	return previous, current, nil
}

func readDocument(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer bz.Close()
		r = bz
	}

	body, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	records, err := DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	return records, nil
}
