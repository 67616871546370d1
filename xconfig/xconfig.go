// Package xconfig loads a configuration struct from `default` tags, YAML or
// JSON files and prefixed environment variables, in that order.
package xconfig

import (
	"fmt"
	"reflect"
)

type Options struct {
	files     []string
	envPrefix string
}

type Option func(*Options)

func WithFiles(filenames ...string) Option {
	return func(o *Options) {
		o.files = append(o.files, filenames...)
	}
}

func WithEnv(prefix string) Option {
	return func(o *Options) {
		o.envPrefix = prefix
	}
}

func Load(config interface{}, options ...Option) error {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}

	configElem, err := validateConfigPointer(config)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	if err := applyDefaultTagsRecursive(configElem); err != nil {
		return fmt.Errorf("failed to apply default tags: %w", err)
	}

	for _, filename := range opts.files {
		if err := loadFromFile(config, filename); err != nil {
			return fmt.Errorf("failed to load from file %s: %w", filename, err)
		}
	}

	if opts.envPrefix != "" {
		if err := loadFromEnv(configElem, opts.envPrefix); err != nil {
			return fmt.Errorf("failed to load from environment: %w", err)
		}
	}

	return nil
}

func validateConfigPointer(config interface{}) (reflect.Value, error) {
	configValue := reflect.ValueOf(config)
	if configValue.Kind() != reflect.Ptr || configValue.IsNil() {
		return reflect.Value{}, fmt.Errorf("config must be a non-nil pointer")
	}

	configElem := configValue.Elem()
	if configElem.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("config must point to a struct, got %s", configElem.Kind())
	}

	return configElem, nil
}
