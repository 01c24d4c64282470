package environment

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ParseTOMLFile fills a struct from a TOML config file using the struct's
// toml tags. Call before ParseEnvTags so environment variables win over file
// values. A missing file is not an error; deployments without a config file
// run on env vars and defaults alone.
func ParseTOMLFile(path string, cfg any) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}

	return nil
}
