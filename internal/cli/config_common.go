package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/nftsql/internal/config"
	"github.com/vvka-141/nftsql/internal/files/filesystem"
	"github.com/vvka-141/nftsql/internal/logging"
	"github.com/vvka-141/nftsql/internal/metadata"
	"github.com/vvka-141/nftsql/internal/params"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// defaultEnvFile is read from the project directory when no --env-file is given.
const defaultEnvFile = ".env"

// sourceFlagValues holds the flags that select and configure the metadata source.
type sourceFlagValues struct {
	envFiles []string
	settings []string
	kind     string
	dir      string
	gateway  string
	cid      string
	imageCID string
	firstID  int64
	lastID   int64
	timeout  time.Duration
}

// addSourceFlags registers the metadata source flags on cmd.
func addSourceFlags(cmd *cobra.Command, f *sourceFlagValues) {
	cmd.Flags().StringSliceVar(&f.envFiles, "env-file", nil,
		"Env file with NFTSQL_* settings (can be specified multiple times)\n"+
			"Later files override earlier ones (default: <project_path>/.env if present)")
	cmd.Flags().StringSliceVar(&f.settings, "set", nil,
		"Source setting as key=value, e.g. --set last_id=99 (can be specified multiple times)\n"+
			"Overrides env files and nftsql.yaml")
	cmd.Flags().StringVar(&f.kind, "source", "",
		"Metadata source: directory|gateway (default: directory)")
	cmd.Flags().StringVar(&f.dir, "dir", "",
		"Directory of <id>.json metadata documents (default: <project_path>/metadata)")
	cmd.Flags().StringVar(&f.gateway, "gateway", "",
		"IPFS gateway base URL (default: "+nftsql.DefaultGateway+")")
	cmd.Flags().StringVar(&f.cid, "cid", "",
		"CID of the metadata directory on IPFS (gateway source)")
	cmd.Flags().StringVar(&f.imageCID, "image-cid", "",
		"CID of the image directory; image fields are rewritten to ipfs://<image-cid>/<file>")
	cmd.Flags().Int64Var(&f.firstID, "first-id", 0,
		"First token id to fetch (gateway source, inclusive)")
	cmd.Flags().Int64Var(&f.lastID, "last-id", 0,
		"Last token id to fetch (gateway source, inclusive)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0,
		"Maximum time to read all metadata (default: 2m, or source.timeout in nftsql.yaml)")
}

// runSettings is the fully resolved configuration of a command run.
type runSettings struct {
	projectPath string
	source      nftsql.SourceConfig
	tables      config.TablesSection
	quoting     nftsql.Quoting
	logger      nftsql.Logger
}

// resolveSettings merges configuration from all layers.
// Priority (highest to lowest): CLI flags > --set > env files > nftsql.yaml > defaults
func resolveSettings(cmd *cobra.Command, projectPath string, f *sourceFlagValues, escape bool) (*runSettings, error) {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("project path %q: %w: %w", projectPath, nftsql.ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %q is not a directory: %w", projectPath, nftsql.ErrInvalidConfig)
	}

	projectCfg, err := loadProjectConfig(projectPath)
	if err != nil {
		return nil, err
	}

	source, err := projectCfg.SourceConfig(projectPath)
	if err != nil {
		return nil, err
	}
	configuredDir := source.Directory

	envValues, err := loadEnvValues(projectPath, f.envFiles, logger)
	if err != nil {
		return nil, err
	}
	if _, err := params.ApplyEnvValues(&source, envValues); err != nil {
		return nil, err
	}

	setValues, err := params.ParseKeyValuePairs(f.settings)
	if err != nil {
		return nil, err
	}
	n, err := params.ApplyOverrides(&source, setValues)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		logger.Verbose("--set overrides %d source setting(s)", n)
	}

	// Directories from env files and --set are relative to the project.
	if source.Directory != configuredDir && !filepath.IsAbs(source.Directory) {
		source.Directory = filepath.Join(projectPath, source.Directory)
	}

	applySourceFlags(cmd, &source, f)

	quoting, err := projectCfg.QuotingMode()
	if err != nil {
		return nil, err
	}
	if escape {
		quoting = nftsql.QuotingEscaped
	}

	logger.Verbose("Source resolved: kind=%s", source.Kind)
	switch source.Kind {
	case nftsql.SourceDirectory:
		logger.Verbose("  Directory: %s", source.Directory)
	case nftsql.SourceGateway:
		logger.Verbose("  Gateway: %s", source.Gateway)
		logger.Verbose("  CID: %s", source.CID)
		logger.Verbose("  Token ids: %d..%d", source.FirstID, source.LastID)
	}
	if source.ImageCID != "" {
		logger.Verbose("  Image CID: %s", source.ImageCID)
	}
	logger.Verbose("  Quoting: %s", quoting)

	return &runSettings{
		projectPath: projectPath,
		source:      source,
		tables:      projectCfg.TableNames(),
		quoting:     quoting,
		logger:      logger,
	}, nil
}

// applySourceFlags copies explicitly given flags onto cfg.
func applySourceFlags(cmd *cobra.Command, cfg *nftsql.SourceConfig, f *sourceFlagValues) {
	if f.kind != "" {
		cfg.Kind = nftsql.SourceKind(f.kind)
	}
	if f.dir != "" {
		cfg.Directory = f.dir
	}
	if f.gateway != "" {
		cfg.Gateway = f.gateway
	}
	if f.cid != "" {
		cfg.CID = f.cid
	}
	if f.imageCID != "" {
		cfg.ImageCID = f.imageCID
	}
	if cmd.Flags().Changed("first-id") {
		cfg.FirstID = f.firstID
	}
	if cmd.Flags().Changed("last-id") {
		cfg.LastID = f.lastID
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout
	}
}

// loadEnvValues reads the given env files, or the project's .env when none
// are given and it exists.
func loadEnvValues(projectPath string, envFiles []string, logger nftsql.Logger) (map[string]string, error) {
	if len(envFiles) == 0 {
		candidate := filepath.Join(projectPath, defaultEnvFile)
		if _, err := os.Stat(candidate); err != nil {
			return map[string]string{}, nil
		}
		envFiles = []string{candidate}
	}

	for _, path := range envFiles {
		logger.Verbose("Loading settings from env file: %s", path)
	}
	values, err := params.LoadEnvFiles(filesystem.NewOSFileSystem(), envFiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", nftsql.ErrInvalidConfig, err)
	}
	return values, nil
}

// loadProjectConfig loads nftsql.yaml from the project directory.
// Returns nil config if nftsql.yaml does not exist (not an error).
func loadProjectConfig(projectPath string) (*config.ProjectConfig, error) {
	projectCfg, err := config.Load(projectPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// newSource builds the metadata source described by s.
func (s *runSettings) newSource() (nftsql.MetadataSource, error) {
	return metadata.NewSource(s.source, s.logger)
}

// commandContext returns a context cancelled on Ctrl+C or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
