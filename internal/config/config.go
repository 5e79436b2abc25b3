package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// extensionNone in nftsql.yaml requests gateway paths without a file extension.
const extensionNone = "none"

type SourceSection struct {
	Kind                 string `yaml:"kind,omitempty"`
	Directory            string `yaml:"directory,omitempty"`
	Gateway              string `yaml:"gateway,omitempty"`
	CID                  string `yaml:"cid,omitempty"`
	ImageCID             string `yaml:"image_cid,omitempty"`
	FirstID              int64  `yaml:"first_id,omitempty"`
	LastID               int64  `yaml:"last_id,omitempty"`
	Extension            string `yaml:"extension,omitempty"`
	Concurrency          int    `yaml:"concurrency,omitempty"`
	Timeout              string `yaml:"timeout,omitempty"`
	NormalizeGatewayURLs bool   `yaml:"normalize_gateway_urls,omitempty"`
}

type TablesSection struct {
	Single     string `yaml:"single,omitempty"`
	Main       string `yaml:"main,omitempty"`
	Attributes string `yaml:"attributes,omitempty"`
}

type ProjectConfig struct {
	Source  SourceSection `yaml:"source"`
	Tables  TablesSection `yaml:"tables"`
	Quoting string        `yaml:"quoting,omitempty"`
}

const ConfigFileName = "nftsql.yaml"

func Load(projectPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectPath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w: %w", ConfigFileName, nftsql.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// SourceConfig converts the source section into an nftsql.SourceConfig,
// filling defaults and resolving a relative directory against projectPath.
// A nil receiver yields the defaults for a directory source.
func (c *ProjectConfig) SourceConfig(projectPath string) (nftsql.SourceConfig, error) {
	var s SourceSection
	if c != nil {
		s = c.Source
	}

	cfg := nftsql.SourceConfig{
		Kind:                 nftsql.SourceKind(s.Kind),
		Directory:            s.Directory,
		Gateway:              s.Gateway,
		CID:                  s.CID,
		ImageCID:             s.ImageCID,
		FirstID:              s.FirstID,
		LastID:               s.LastID,
		Extension:            s.Extension,
		Concurrency:          s.Concurrency,
		Timeout:              nftsql.DefaultSourceTimeout,
		NormalizeGatewayURLs: s.NormalizeGatewayURLs,
	}

	if cfg.Kind == "" {
		cfg.Kind = nftsql.SourceDirectory
	}
	if cfg.Gateway == "" {
		cfg.Gateway = nftsql.DefaultGateway
	}
	switch cfg.Extension {
	case "":
		cfg.Extension = nftsql.DefaultExtension
	case extensionNone:
		cfg.Extension = ""
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = nftsql.DefaultConcurrency
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return nftsql.SourceConfig{}, fmt.Errorf("invalid timeout in %s: %w", ConfigFileName, nftsql.ErrInvalidConfig)
		}
		cfg.Timeout = d
	}
	if cfg.Directory == "" {
		cfg.Directory = "metadata"
	}
	if !filepath.IsAbs(cfg.Directory) {
		cfg.Directory = filepath.Join(projectPath, cfg.Directory)
	}
	return cfg, nil
}

// TableNames returns the configured table names with defaults applied.
func (c *ProjectConfig) TableNames() TablesSection {
	t := TablesSection{
		Single:     nftsql.DefaultSingleTable,
		Main:       nftsql.DefaultMainTable,
		Attributes: nftsql.DefaultAttributesTable,
	}
	if c == nil {
		return t
	}
	if c.Tables.Single != "" {
		t.Single = c.Tables.Single
	}
	if c.Tables.Main != "" {
		t.Main = c.Tables.Main
	}
	if c.Tables.Attributes != "" {
		t.Attributes = c.Tables.Attributes
	}
	return t
}

// QuotingMode parses the quoting setting. A nil receiver yields QuotingVerbatim.
func (c *ProjectConfig) QuotingMode() (nftsql.Quoting, error) {
	if c == nil {
		return nftsql.QuotingVerbatim, nil
	}
	return nftsql.ParseQuoting(c.Quoting)
}
