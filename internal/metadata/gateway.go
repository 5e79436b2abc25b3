package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/nftsql/internal/logging"
	"github.com/vvka-141/nftsql/internal/retry"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// GatewaySource fetches metadata documents for a contiguous token id range
// from an IPFS HTTP gateway. Fetches run concurrently; results keep id order.
type GatewaySource struct {
	client      *http.Client
	gateway     string
	cid         string
	firstID     int64
	lastID      int64
	ext         string
	concurrency int
	timeout     time.Duration
	opts        DecodeOptions
	executor    *retry.Executor
	logger      nftsql.Logger
}

// GatewayOption configures a GatewaySource.
type GatewayOption func(*GatewaySource)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(s *GatewaySource) { s.client = client }
}

// WithRetryExecutor replaces the default retry executor.
func WithRetryExecutor(executor *retry.Executor) GatewayOption {
	return func(s *GatewaySource) { s.executor = executor }
}

// NewGatewaySource creates a GatewaySource from cfg. A nil logger discards messages.
func NewGatewaySource(cfg nftsql.SourceConfig, logger nftsql.Logger, opts ...GatewayOption) (*GatewaySource, error) {
	if cfg.Kind == "" {
		cfg.Kind = nftsql.SourceGateway
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(cfg.Gateway); err != nil {
		return nil, fmt.Errorf("invalid gateway URL %q: %w", cfg.Gateway, nftsql.ErrInvalidConfig)
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	s := &GatewaySource{
		client:      http.DefaultClient,
		gateway:     cfg.Gateway,
		cid:         cfg.CID,
		firstID:     cfg.FirstID,
		lastID:      cfg.LastID,
		ext:         cfg.Extension,
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		opts:        DecodeOptions{ImageCID: cfg.ImageCID, NormalizeGatewayURLs: cfg.NormalizeGatewayURLs},
		logger:      logger,
	}
	if s.concurrency == 0 {
		s.concurrency = nftsql.DefaultConcurrency
	}

	strategy := retry.NewExponentialBackoff(nftsql.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(nftsql.DefaultRetryInitialDelay),
		retry.WithMaxDelay(nftsql.DefaultRetryMaxDelay),
	)
	s.executor = retry.NewExecutor(retry.NewHTTPErrorClassifier(), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Retrying gateway fetch in %v (retry %d): %v", delay, attempt+1, err)
		})

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Metadata implements nftsql.MetadataSource.
func (s *GatewaySource) Metadata(ctx context.Context) ([]nftsql.MetadataRecord, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	count := int(s.lastID - s.firstID + 1)
	s.logger.Verbose("Fetching %d metadata document(s) from %s (cid %s)", count, s.gateway, s.cid)

	records := make([]nftsql.MetadataRecord, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			record, err := s.fetch(gctx, s.firstID+int64(i))
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", nftsql.ErrMetadataSource, err)
	}
	return records, nil
}

// DocumentURL returns the gateway URL of the document for token id.
func (s *GatewaySource) DocumentURL(id int64) (string, error) {
	return url.JoinPath(s.gateway, "ipfs", s.cid, strconv.FormatInt(id, 10)+s.ext)
}

func (s *GatewaySource) fetch(ctx context.Context, id int64) (nftsql.MetadataRecord, error) {
	docURL, err := s.DocumentURL(id)
	if err != nil {
		return nftsql.MetadataRecord{}, err
	}

	var body []byte
	err = s.executor.Execute(ctx, func(ctx context.Context) error {
		b, getErr := s.get(ctx, docURL)
		if getErr != nil {
			return getErr
		}
		body = b
		return nil
	})
	if err != nil {
		return nftsql.MetadataRecord{}, fmt.Errorf("token %d: %w", id, err)
	}

	return Decode(body, docURL, s.opts.WithFallbackID(id))
}

func (s *GatewaySource) get(ctx context.Context, docURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &retry.StatusError{URL: docURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, nftsql.MaxMetadataDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > nftsql.MaxMetadataDocumentSize {
		return nil, &RecordError{Source: docURL, Message: fmt.Sprintf("document exceeds %d bytes", nftsql.MaxMetadataDocumentSize)}
	}
	return body, nil
}

var _ nftsql.MetadataSource = (*GatewaySource)(nil)
