package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// EnvPrefix marks the env file keys that configure nftsql.
const EnvPrefix = "NFTSQL_"

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
//
// Example:
//
//	values, err := ParseKeyValuePairs([]string{"first_id=1", "last_id=50"})
//	// Returns: map[string]string{"first_id": "1", "last_id": "50"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("setting %q is not in key=value format (example: --set last_id=99): %w", pair, nftsql.ErrInvalidConfig)
		}
		if key == "" {
			return nil, fmt.Errorf("setting has empty key: %q: %w", pair, nftsql.ErrInvalidConfig)
		}
		result[key] = value
	}

	return result, nil
}

// sourceSetting is one field of SourceConfig that env files and --set can change.
// The first name is the one env files use after the NFTSQL_ prefix; the rest
// are short forms accepted by --set only.
type sourceSetting struct {
	names []string
	apply func(cfg *nftsql.SourceConfig, key, value string) error
}

// sourceSettings is applied in order, so the result never depends on map iteration.
var sourceSettings = []sourceSetting{
	{names: []string{"source", "kind"}, apply: func(cfg *nftsql.SourceConfig, _, value string) error {
		cfg.Kind = nftsql.SourceKind(value)
		return nil
	}},
	{names: []string{"metadata_dir", "dir", "directory"}, apply: func(cfg *nftsql.SourceConfig, _, value string) error {
		cfg.Directory = value
		return nil
	}},
	{names: []string{"gateway"}, apply: func(cfg *nftsql.SourceConfig, _, value string) error {
		cfg.Gateway = value
		return nil
	}},
	{names: []string{"metadata_cid", "cid"}, apply: func(cfg *nftsql.SourceConfig, _, value string) error {
		cfg.CID = value
		return nil
	}},
	{names: []string{"image_cid"}, apply: func(cfg *nftsql.SourceConfig, _, value string) error {
		cfg.ImageCID = value
		return nil
	}},
	{names: []string{"first_id"}, apply: func(cfg *nftsql.SourceConfig, key, value string) (err error) {
		cfg.FirstID, err = parseID(key, value)
		return err
	}},
	{names: []string{"last_id"}, apply: func(cfg *nftsql.SourceConfig, key, value string) (err error) {
		cfg.LastID, err = parseID(key, value)
		return err
	}},
}

// ApplyEnvValues sets the NFTSQL_-prefixed keys of values (loaded from env
// files) on cfg. Keys without the prefix and --set short forms are ignored.
// It returns the number of settings applied.
func ApplyEnvValues(cfg *nftsql.SourceConfig, values map[string]string) (int, error) {
	return applySettings(cfg, values, true)
}

// ApplyOverrides sets the --set values on cfg. Keys are matched without regard
// to case, the NFTSQL_ prefix is optional and short forms such as cid or dir
// are accepted. Two keys naming the same setting with different values are
// rejected. It returns the number of settings applied.
func ApplyOverrides(cfg *nftsql.SourceConfig, values map[string]string) (int, error) {
	return applySettings(cfg, values, false)
}

func applySettings(cfg *nftsql.SourceConfig, values map[string]string, envFile bool) (int, error) {
	matched := make([][]string, len(sourceSettings))
	for rawKey := range values {
		if i, ok := lookupSetting(rawKey, envFile); ok {
			matched[i] = append(matched[i], rawKey)
		}
	}

	applied := 0
	for i, setting := range sourceSettings {
		keys := matched[i]
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		for _, other := range keys[1:] {
			if values[other] != values[keys[0]] {
				return applied, fmt.Errorf("conflicting settings %s=%q and %s=%q: %w",
					keys[0], values[keys[0]], other, values[other], nftsql.ErrInvalidConfig)
			}
		}
		if err := setting.apply(cfg, keys[0], values[keys[0]]); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// lookupSetting returns the index in sourceSettings that key names.
func lookupSetting(key string, envFile bool) (int, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	name, prefixed := strings.CutPrefix(key, strings.ToLower(EnvPrefix))
	if envFile && !prefixed {
		return 0, false
	}
	for i, setting := range sourceSettings {
		if envFile {
			if name == setting.names[0] {
				return i, true
			}
			continue
		}
		for _, candidate := range setting.names {
			if name == candidate {
				return i, true
			}
		}
	}
	return 0, false
}

func parseID(key, value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an integer: %w", key, value, nftsql.ErrInvalidConfig)
	}
	return id, nil
}
