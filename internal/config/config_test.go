package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `source:
  kind: gateway
  directory: /data/metadata
  gateway: https://nftstorage.link
  cid: bafymeta
  image_cid: bafyimages
  first_id: 1
  last_id: 100
  extension: none
  concurrency: 8
  timeout: 45s
  normalize_gateway_urls: true

tables:
  single: collection
  main: collection_main
  attributes: collection_attrs

quoting: escaped
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	src, err := cfg.SourceConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, nftsql.SourceConfig{
		Kind:                 nftsql.SourceGateway,
		Directory:            "/data/metadata",
		Gateway:              "https://nftstorage.link",
		CID:                  "bafymeta",
		ImageCID:             "bafyimages",
		FirstID:              1,
		LastID:               100,
		Extension:            "",
		Concurrency:          8,
		Timeout:              45 * time.Second,
		NormalizeGatewayURLs: true,
	}, src)

	assert.Equal(t, TablesSection{Single: "collection", Main: "collection_main", Attributes: "collection_attrs"}, cfg.TableNames())

	q, err := cfg.QuotingMode()
	require.NoError(t, err)
	assert.Equal(t, nftsql.QuotingEscaped, q)
}

func TestLoad_MinimalYAMLUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("tables:\n  single: things\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	src, err := cfg.SourceConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, nftsql.SourceDirectory, src.Kind)
	assert.Equal(t, filepath.Join(dir, "metadata"), src.Directory)
	assert.Equal(t, nftsql.DefaultGateway, src.Gateway)
	assert.Equal(t, nftsql.DefaultExtension, src.Extension)
	assert.Equal(t, nftsql.DefaultConcurrency, src.Concurrency)
	assert.Equal(t, nftsql.DefaultSourceTimeout, src.Timeout)

	tables := cfg.TableNames()
	assert.Equal(t, "things", tables.Single)
	assert.Equal(t, nftsql.DefaultMainTable, tables.Main)
	assert.Equal(t, nftsql.DefaultAttributesTable, tables.Attributes)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("source: [unclosed"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, nftsql.ErrInvalidConfig)
}

func TestProjectConfig_InvalidTimeout(t *testing.T) {
	cfg := &ProjectConfig{Source: SourceSection{Timeout: "soon"}}
	_, err := cfg.SourceConfig(".")
	assert.ErrorIs(t, err, nftsql.ErrInvalidConfig)
}

func TestProjectConfig_InvalidQuoting(t *testing.T) {
	cfg := &ProjectConfig{Quoting: "loose"}
	_, err := cfg.QuotingMode()
	assert.ErrorIs(t, err, nftsql.ErrInvalidConfig)
}

func TestProjectConfig_NilReceiver(t *testing.T) {
	var cfg *ProjectConfig

	src, err := cfg.SourceConfig("/project")
	require.NoError(t, err)
	assert.Equal(t, nftsql.SourceDirectory, src.Kind)
	assert.Equal(t, filepath.Join("/project", "metadata"), src.Directory)

	assert.Equal(t, nftsql.DefaultSingleTable, cfg.TableNames().Single)

	q, err := cfg.QuotingMode()
	require.NoError(t, err)
	assert.Equal(t, nftsql.QuotingVerbatim, q)
}
