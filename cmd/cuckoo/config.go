package main

import (
	"github.com/vitalvas/gocuckoo/xconfig"
	"github.com/vitalvas/gocuckoo/xlogger"
)

const envPrefix = "CUCKOO"

type Config struct {
	Logger   xlogger.Config `yaml:"logger"`
	Filter   FilterConfig   `yaml:"filter"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

type FilterConfig struct {
	Capacity int    `yaml:"capacity" default:"1000000"`
	Hasher   string `yaml:"hasher" default:"xxh64"`
}

type SnapshotConfig struct {
	Path     string `yaml:"path" default:"cuckoo.bin"`
	Compress bool   `yaml:"compress"`
}

// loadConfig applies defaults, then filename (when set), then CUCKOO_* variables.
func loadConfig(filename string) (Config, error) {
	var conf Config

	var opts []xconfig.Option
	if filename != "" {
		opts = append(opts, xconfig.WithFiles(filename))
	}
	opts = append(opts, xconfig.WithEnv(envPrefix))

	if err := xconfig.Load(&conf, opts...); err != nil {
		return Config{}, err
	}

	return conf, nil
}
