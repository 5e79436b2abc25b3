package nftsql_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

func TestSourceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  nftsql.SourceConfig
		wantErr bool
	}{
		{
			name:   "directory source",
			config: nftsql.SourceConfig{Kind: nftsql.SourceDirectory, Directory: "./metadata"},
		},
		{
			name:    "directory source without directory",
			config:  nftsql.SourceConfig{Kind: nftsql.SourceDirectory},
			wantErr: true,
		},
		{
			name: "gateway source",
			config: nftsql.SourceConfig{
				Kind:    nftsql.SourceGateway,
				Gateway: "https://ipfs.io",
				CID:     "bafyexample",
				FirstID: 0,
				LastID:  9,
			},
		},
		{
			name:    "gateway source without cid",
			config:  nftsql.SourceConfig{Kind: nftsql.SourceGateway, Gateway: "https://ipfs.io"},
			wantErr: true,
		},
		{
			name: "gateway source with inverted range",
			config: nftsql.SourceConfig{
				Kind:    nftsql.SourceGateway,
				Gateway: "https://ipfs.io",
				CID:     "bafyexample",
				FirstID: 5,
				LastID:  1,
			},
			wantErr: true,
		},
		{
			name: "gateway source at the range cap",
			config: nftsql.SourceConfig{
				Kind:    nftsql.SourceGateway,
				Gateway: "https://ipfs.io",
				CID:     "bafyexample",
				FirstID: 1,
				LastID:  nftsql.MaxTokenRange,
			},
		},
		{
			name: "gateway source over the range cap",
			config: nftsql.SourceConfig{
				Kind:    nftsql.SourceGateway,
				Gateway: "https://ipfs.io",
				CID:     "bafyexample",
				FirstID: 0,
				LastID:  nftsql.MaxTokenRange,
			},
			wantErr: true,
		},
		{
			name: "gateway source with huge last id",
			config: nftsql.SourceConfig{
				Kind:    nftsql.SourceGateway,
				Gateway: "https://ipfs.io",
				CID:     "bafyexample",
				LastID:  1 << 62,
			},
			wantErr: true,
		},
		{
			name: "gateway source spanning all int64 ids",
			config: nftsql.SourceConfig{
				Kind:    nftsql.SourceGateway,
				Gateway: "https://ipfs.io",
				CID:     "bafyexample",
				FirstID: math.MinInt64,
				LastID:  math.MaxInt64,
			},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			config:  nftsql.SourceConfig{Kind: nftsql.SourceDirectory, Directory: ".", Timeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			config:  nftsql.SourceConfig{Kind: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, nftsql.ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseQuoting(t *testing.T) {
	q, err := nftsql.ParseQuoting("")
	require.NoError(t, err)
	assert.Equal(t, nftsql.QuotingVerbatim, q)

	q, err = nftsql.ParseQuoting("escaped")
	require.NoError(t, err)
	assert.Equal(t, nftsql.QuotingEscaped, q)
	assert.Equal(t, "escaped", q.String())

	_, err = nftsql.ParseQuoting("paranoid")
	require.ErrorIs(t, err, nftsql.ErrInvalidConfig)
}

func TestStaticSource(t *testing.T) {
	records := []nftsql.MetadataRecord{{ID: 1, Name: "Cat"}, {ID: 2, Name: "Dog"}}

	got, err := nftsql.StaticSource(records).Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = nftsql.StaticSource(records).Metadata(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceFunc(t *testing.T) {
	boom := errors.New("boom")
	src := nftsql.SourceFunc(func(ctx context.Context) ([]nftsql.MetadataRecord, error) {
		return nil, boom
	})

	_, err := src.Metadata(context.Background())
	assert.ErrorIs(t, err, boom)
}
