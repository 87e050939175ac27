// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/tochemey/ensemble/composer"
	"github.com/tochemey/ensemble/directive"
	gerrors "github.com/tochemey/ensemble/errors"
	"github.com/tochemey/ensemble/extension"
	"github.com/tochemey/ensemble/hash"
	"github.com/tochemey/ensemble/internal/validation"
	"github.com/tochemey/ensemble/log"
)

// Config holds the settings an application composes its classes with.
// Every field can be set from the environment.
type Config struct {
	// Name of the root class. The default value is App
	Name string `env:"ENSEMBLE_NAME" envDefault:"App"`
	// Environment the classes are built for. The default value is development
	Environment string `env:"ENSEMBLE_ENV" envDefault:"development"`
	// LabelPrefix prefixes the label of generated classes. The default value is Composite
	LabelPrefix string `env:"ENSEMBLE_LABEL_PREFIX" envDefault:"Composite"`
	// ManifestPath points at an optional YAML manifest of defaults and composites
	ManifestPath string `env:"ENSEMBLE_MANIFEST"`
	// LogLevel is one of debug, info, warn, error. The default value is info
	LogLevel string `env:"ENSEMBLE_LOG_LEVEL" envDefault:"info"`
	// Hasher keys the composite caches, xxhash or xxh3. The default value is xxhash
	Hasher string `env:"ENSEMBLE_HASHER" envDefault:"xxhash"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	config := new(Config)
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every setting and reports all violations at once.
func (c *Config) Validate() error {
	_, envErr := extension.ParseEnvironment(c.Environment)
	return validation.New(validation.AllErrors()).
		AddValidator(validation.NewNameValidator(c.Name, gerrors.ErrInvalidName)).
		AddValidator(validation.NewNameValidator(c.LabelPrefix, gerrors.ErrInvalidName)).
		AddAssertion(envErr == nil, fmt.Sprintf("invalid environment %q", c.Environment)).
		AddAssertion(log.ParseLevel(c.LogLevel) != log.InvalidLevel, fmt.Sprintf("invalid log level %q", c.LogLevel)).
		AddAssertion(c.hasher() != nil, fmt.Sprintf("invalid hasher %q", c.Hasher)).
		Validate()
}

// Env returns the environment classes are built for.
func (c *Config) Env() extension.Environment {
	env, _ := extension.ParseEnvironment(c.Environment)
	return env
}

// Build builds class for the configured environment.
func (c *Config) Build(class *composer.Class) (*composer.Blueprint, error) {
	return class.Build(c.Env())
}

// Logger returns a zap logger writing to stdout at the configured level.
func (c *Config) Logger() log.Logger {
	return log.NewZap(log.ParseLevel(c.LogLevel), os.Stdout)
}

// Options maps the configuration onto composer options.
func (c *Config) Options() []composer.Option {
	return []composer.Option{
		composer.WithLabelPrefix(c.LabelPrefix),
		composer.WithLogger(c.Logger()),
		composer.WithHasher(c.hasher()),
	}
}

func (c *Config) hasher() hash.Hasher {
	switch strings.ToLower(c.Hasher) {
	case "", "xxhash":
		return hash.DefaultHasher()
	case "xxh3":
		return hash.XXH3Hasher()
	default:
		return nil
	}
}

// Manifest reads and parses the manifest file. It returns nil when no path is set.
func (c *Config) Manifest() (*directive.Manifest, error) {
	if c.ManifestPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.ManifestPath)
	if err != nil {
		return nil, gerrors.NewErrInvalidManifest(err)
	}
	return directive.ParseManifest(data)
}

// Setup creates the root class with the configured options followed by opts,
// then loads the manifest into it when one is configured. The returned map
// holds the named composites of the manifest.
func (c *Config) Setup(opts ...composer.Option) (*composer.Class, map[string]*composer.Class, error) {
	manifest, err := c.Manifest()
	if err != nil {
		return nil, nil, err
	}

	root, err := composer.NewClass(c.Name, append(c.Options(), opts...)...)
	if err != nil {
		return nil, nil, err
	}

	if manifest == nil {
		return root, map[string]*composer.Class{}, nil
	}

	composites, err := root.LoadManifest(manifest)
	if err != nil {
		return nil, nil, err
	}
	return root, composites, nil
}
