package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nftsql/internal/logging"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

func TestCheckFormat(t *testing.T) {
	require.NoError(t, checkFormat("sql", formatSQL, formatJSON))

	err := checkFormat("xml", formatSQL, formatJSON)
	require.Error(t, err)
	assert.Equal(t, nftsql.ExitUsageError, nftsql.ExitCodeForError(err))
}

func TestWriteJSON_DoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []string{"a < b && c > d"}))
	assert.Equal(t, "[\n  \"a < b && c > d\"\n]\n", buf.String())
}

func TestStrictSource(t *testing.T) {
	var logBuf bytes.Buffer
	logger := logging.NewConsoleLoggerTo(&logBuf, false)

	t.Run("valid records pass through", func(t *testing.T) {
		records := nftsql.StaticSource{{ID: 1, Name: "Cat", Image: "ipfs://x"}}
		got, err := strictSource(records, nftsql.QuotingVerbatim, logger).Metadata(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []nftsql.MetadataRecord(records), got)
	})

	t.Run("problems fail the pull", func(t *testing.T) {
		records := nftsql.StaticSource{
			{ID: 1, Name: "Cat", Image: "ipfs://x"},
			{ID: 1, Name: "", Image: "ipfs://y"},
		}
		_, err := strictSource(records, nftsql.QuotingVerbatim, logger).Metadata(context.Background())
		require.ErrorIs(t, err, nftsql.ErrValidationFailed)
		assert.Contains(t, logBuf.String(), "token 1")
	})

	t.Run("source errors are returned unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		failing := nftsql.SourceFunc(func(context.Context) ([]nftsql.MetadataRecord, error) { return nil, boom })
		_, err := strictSource(failing, nftsql.QuotingVerbatim, logger).Metadata(context.Background())
		assert.Same(t, boom, err)
	})
}
