// Package config aggregates tool configuration from a yaml file and
// environment variables.
package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"

	"github.com/lgxbslgx/skara/internal/report"
	"github.com/lgxbslgx/skara/internal/server"
)

const (
	defaultPolicyPath = ".jcheck/conf"
	defaultGitPath    = "git"
	defaultRepoDir    = "."
)

// Config represents the main application configuration
type Config struct {
	Policy   PolicyConfig  `yaml:"policy"`
	Git      GitConfig     `yaml:"git"`
	Runner   RunnerConfig  `yaml:"runner"`
	Reporter report.Config `yaml:"reporter"`
	Server   server.Config `yaml:"server"`
}

// PolicyConfig locates the policy file with the check settings.
// URL takes precedence over Path when both are set.
type PolicyConfig struct {
	Path string `yaml:"path" env:"POLICY_PATH"`
	URL  string `yaml:"url" env:"POLICY_URL"`
}

// GitConfig points at the repository under check.
type GitConfig struct {
	Path string `yaml:"path" env:"GIT_PATH"`
	Dir  string `yaml:"dir" env:"GIT_DIR"`
}

// RunnerConfig sizes the worker pool for checking commit ranges.
type RunnerConfig struct {
	Workers int `yaml:"workers" env:"RUNNER_WORKERS"`
}

// Load reads configuration from an optional yaml file and from
// environment variables.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "read config file", "path", path)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, errm.Wrap(err, "read config from env")
		}
	}

	if err := cfg.PrepareAndValidate(); err != nil {
		return Config{}, errm.Wrap(err, "validate config")
	}

	return cfg, nil
}

// PrepareAndValidate fills the defaults of the tool's own sections.
// Reporter and server configs are validated by their components.
func (c *Config) PrepareAndValidate() error {
	c.Policy.Path = lang.Check(c.Policy.Path, defaultPolicyPath)
	c.Git.Path = lang.Check(c.Git.Path, defaultGitPath)
	c.Git.Dir = lang.Check(c.Git.Dir, defaultRepoDir)

	if c.Runner.Workers < 0 {
		return ErrNegativeWorkers
	}

	return nil
}
