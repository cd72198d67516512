package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/zimsite/internal/foundation/errors"
)

// Load reads a YAML configuration file, expands ${VAR} references, and applies defaults.
// Callers validate after applying command-line overrides.
func Load(configPath string) (*Options, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	opts, err := Parse(strings.NewReader(os.ExpandEnv(string(data))))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", configPath)
		}
		return nil, err
	}
	return opts, nil
}

// Parse decodes options from r, rejecting unknown keys, then applies defaults.
func Parse(r io.Reader) (*Options, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var opts Options
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return nil, errors.ConfigError("failed to unmarshal config").WithCause(err).Build()
	}

	opts.ApplyDefaults()
	return &opts, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.UnpackedDir = "${ZIM_UNPACKED_DIR}"
	example.Site.Title = "Wikipedia (offline snapshot)"
	example.Site.Notice = "Content is available under [CC BY-SA 4.0](https://creativecommons.org/licenses/by-sa/4.0/)."
	example.Site.LicenseURL = "https://creativecommons.org/licenses/by-sa/4.0/"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}
