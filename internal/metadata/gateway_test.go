package metadata

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nftsql/internal/logging"
	"github.com/vvka-141/nftsql/internal/retry"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

func gatewayConfig(url string, first, last int64) nftsql.SourceConfig {
	return nftsql.SourceConfig{
		Kind:                 nftsql.SourceGateway,
		Gateway:              url,
		CID:                  "bafymeta",
		FirstID:              first,
		LastID:               last,
		Extension:            ".json",
		Concurrency:          3,
		NormalizeGatewayURLs: true,
	}
}

func fastRetries() GatewayOption {
	strategy := retry.NewExponentialBackoff(3, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0))
	return WithRetryExecutor(retry.NewExecutor(retry.NewHTTPErrorClassifier(), strategy))
}

func TestGatewaySource_FetchesRangeInOrder(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		var id int
		if _, err := fmt.Sscanf(r.URL.Path, "/ipfs/bafymeta/%d.json", &id); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"name": "NFT %d", "image": "https://ipfs.io/ipfs/bafyimg/%d.png", "attributes": [{"trait_type": "rank", "value": %d}]}`, id, id, id)
	}))
	defer server.Close()

	src, err := NewGatewaySource(gatewayConfig(server.URL, 1, 5), logging.NewNullLogger(), fastRetries())
	require.NoError(t, err)

	records, err := src.Metadata(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, r := range records {
		id := int64(i + 1)
		assert.Equal(t, id, r.ID)
		assert.Equal(t, fmt.Sprintf("NFT %d", id), r.Name)
		assert.Equal(t, fmt.Sprintf("ipfs://bafyimg/%d.png", id), r.Image)
		assert.Equal(t, []nftsql.Attribute{{TraitType: "rank", Value: fmt.Sprint(id)}}, r.Attributes)
	}
	assert.Len(t, paths, 5)
}

func TestGatewaySource_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"id": 0, "name": "Zero"}`)
	}))
	defer server.Close()

	src, err := NewGatewaySource(gatewayConfig(server.URL, 0, 0), logging.NewNullLogger(), fastRetries())
	require.NoError(t, err)

	records, err := src.Metadata(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Zero", records[0].Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGatewaySource_NotFoundIsFatal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	src, err := NewGatewaySource(gatewayConfig(server.URL, 7, 7), logging.NewNullLogger(), fastRetries())
	require.NoError(t, err)

	_, err = src.Metadata(context.Background())
	require.ErrorIs(t, err, nftsql.ErrMetadataSource)
	assert.Contains(t, err.Error(), "token 7")
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGatewaySource_MalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer server.Close()

	src, err := NewGatewaySource(gatewayConfig(server.URL, 1, 2), logging.NewNullLogger(), fastRetries())
	require.NoError(t, err)

	_, err = src.Metadata(context.Background())
	require.ErrorIs(t, err, nftsql.ErrMetadataSource)
	assert.Contains(t, err.Error(), "metadata error in")
}

func TestGatewaySource_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := gatewayConfig(server.URL, 1, 1)
	cfg.Timeout = 50 * time.Millisecond
	src, err := NewGatewaySource(cfg, logging.NewNullLogger(), fastRetries())
	require.NoError(t, err)

	_, err = src.Metadata(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGatewaySource_DocumentURL(t *testing.T) {
	cfg := gatewayConfig("https://ipfs.io/", 1, 1)
	src, err := NewGatewaySource(cfg, logging.NewNullLogger())
	require.NoError(t, err)

	u, err := src.DocumentURL(42)
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/bafymeta/42.json", u)

	cfg.Extension = ""
	src, err = NewGatewaySource(cfg, logging.NewNullLogger())
	require.NoError(t, err)
	u, err = src.DocumentURL(42)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u, "/bafymeta/42"))
}

func TestNewGatewaySource_InvalidConfig(t *testing.T) {
	_, err := NewGatewaySource(nftsql.SourceConfig{Gateway: "https://ipfs.io"}, logging.NewNullLogger())
	assert.ErrorIs(t, err, nftsql.ErrInvalidConfig)

	_, err = NewGatewaySource(gatewayConfig("not a url", 0, 1), logging.NewNullLogger())
	assert.ErrorIs(t, err, nftsql.ErrInvalidConfig)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(nftsql.SourceConfig{Kind: nftsql.SourceDirectory, Directory: t.TempDir()}, logging.NewNullLogger())
	require.NoError(t, err)
	assert.IsType(t, &DirectorySource{}, src)

	src, err = NewSource(gatewayConfig("https://ipfs.io", 0, 1), logging.NewNullLogger())
	require.NoError(t, err)
	assert.IsType(t, &GatewaySource{}, src)

	_, err = NewSource(nftsql.SourceConfig{Kind: "ftp"}, logging.NewNullLogger())
	assert.ErrorIs(t, err, nftsql.ErrInvalidConfig)
}

func TestNewGatewaySource_RejectsOversizedRange(t *testing.T) {
	tests := []struct {
		name        string
		first, last int64
	}{
		{name: "full int64 span", first: math.MinInt64, last: math.MaxInt64},
		{name: "huge last id", first: 0, last: 1 << 62},
		{name: "one past the cap", first: 0, last: nftsql.MaxTokenRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGatewaySource(gatewayConfig("https://ipfs.io", tt.first, tt.last), logging.NewNullLogger())
			require.ErrorIs(t, err, nftsql.ErrInvalidConfig)
			assert.Equal(t, nftsql.ExitConfigError, nftsql.ExitCodeForError(err))
		})
	}
}

func TestNewGatewaySource_NilLoggerDiscardsMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "One", "image": "ipfs://x"}`)
	}))
	defer server.Close()

	src, err := NewGatewaySource(gatewayConfig(server.URL, 1, 1), nil, fastRetries())
	require.NoError(t, err)

	records, err := src.Metadata(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].ID)
}
