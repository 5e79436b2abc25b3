package params

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/vvka-141/nftsql/internal/files/filesystem"
)

// ParseEnvFile parses .env content into a map of key-value pairs.
func ParseEnvFile(content []byte) (map[string]string, error) {
	values, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return nil, err
	}
	return values, nil
}

// LoadEnvFiles reads and merges env files in order; later files override
// earlier ones.
func LoadEnvFiles(fsys filesystem.Provider, paths []string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, path := range paths {
		content, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
		}
		values, err := ParseEnvFile(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse env file '%s': %w\n\nTip: Verify the file format (KEY=VALUE)", path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return merged, nil
}
