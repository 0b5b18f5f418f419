package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of an optional .griffe.yaml, layered under
// explicit CLI flags the way AILANG_PATH/AILANG_STDLIB sit under this
// tool's own --search flag: file config supplies defaults, flags
// passed on the command line always win.
type fileConfig struct {
	Search   []string          `yaml:"search"`
	Docstyle string            `yaml:"docstyle"`
	Docopts  map[string]string `yaml:"docopts"`
}

// loadFileConfig reads .griffe.yaml from the working directory, if
// present. A missing file is not an error; a malformed one is.
func loadFileConfig() (*fileConfig, error) {
	data, err := os.ReadFile(".griffe.yaml")
	if os.IsNotExist(err) {
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeSearchPaths layers cliPaths (explicit -s/--search flags) after
// any paths named in .griffe.yaml, so CLI-provided paths are searched
// first without discarding file-configured defaults.
func mergeSearchPaths(fileCfg *fileConfig, cliPaths []string) []string {
	if fileCfg == nil || len(fileCfg.Search) == 0 {
		return cliPaths
	}
	out := append([]string(nil), cliPaths...)
	out = append(out, fileCfg.Search...)
	return out
}
