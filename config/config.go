// Package config reads the configuration of the evaluator from YAML and from the environment
package config

import (
	"io/ioutil"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/semver/semver"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v2"
)

const (
	DefaultLanguageVersion = `3.5.0`
	DefaultLogLevel        = eval.WARNING

	LanguageVersionEnv = `RCALL_LANGUAGE_VERSION`
	SpecializeEnv      = `RCALL_SPECIALIZE`
	LogLevelEnv        = `RCALL_LOG_LEVEL`
)

// Config is the configuration of an evaluation context
type Config struct {
	// LanguageVersion determines what builtins are available
	LanguageVersion string `yaml:"language_version"`

	// Specialize enables the specialization of call sites
	Specialize bool `yaml:"specialize"`

	// LogLevel is the lowest level that is logged
	LogLevel string `yaml:"log_level"`

	version semver.Version
	level   eval.LogLevel
}

// Default returns the default configuration
func Default() *Config {
	c := &Config{LanguageVersion: DefaultLanguageVersion, Specialize: true, LogLevel: string(DefaultLogLevel)}
	if err := c.validate(); err != nil {
		panic(err)
	}
	return c
}

// FromEnvironment returns the default configuration with the overrides of the environment
func FromEnvironment() (*Config, error) {
	return Parse(nil)
}

// Load reads the configuration from a YAML file and applies the overrides of the environment
func Load(path string) (*Config, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, eval.Error(nil, eval.ConfigError, issue.H{`detail`: err.Error()})
	}
	return Parse(content)
}

// Parse reads the configuration from YAML content and applies the overrides of the environment.
// Settings that are not present in the content retain their default values.
func Parse(content []byte) (*Config, error) {
	c := &Config{LanguageVersion: DefaultLanguageVersion, Specialize: true, LogLevel: string(DefaultLogLevel)}
	if len(content) > 0 {
		if err := yaml.UnmarshalStrict(content, c); err != nil {
			return nil, eval.Error(nil, eval.ConfigError, issue.H{`detail`: err.Error()})
		}
	}
	c.LanguageVersion = env.Str(LanguageVersionEnv, c.LanguageVersion)
	c.LogLevel = env.Str(LogLevelEnv, c.LogLevel)
	if env.Has(SpecializeEnv) {
		c.Specialize = env.Bool(SpecializeEnv)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	v, err := semver.ParseVersion(c.LanguageVersion)
	if err != nil {
		return eval.Error(nil, eval.ConfigError, issue.H{`detail`: err.Error()})
	}
	l, ok := eval.ParseLogLevel(c.LogLevel)
	if !ok {
		return eval.Error(nil, eval.ConfigError, issue.H{`detail`: `unknown log level '` + c.LogLevel + `'`})
	}
	c.version = v
	c.level = l
	return nil
}

// Version returns the parsed language version
func (c *Config) Version() semver.Version {
	return c.version
}

// Level returns the parsed log level
func (c *Config) Level() eval.LogLevel {
	return c.level
}
