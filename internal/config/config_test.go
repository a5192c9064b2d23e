package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lgxbslgx/skara/internal/report"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
policy:
  path: policies/strict.conf
git:
  dir: /srv/repos/jdk
runner:
  workers: 8
reporter:
  type: text
server:
  address: 127.0.0.1:9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "policies/strict.conf", cfg.Policy.Path)
	require.Equal(t, "/srv/repos/jdk", cfg.Git.Dir)
	require.Equal(t, "git", cfg.Git.Path)
	require.Equal(t, 8, cfg.Runner.Workers)
	require.Equal(t, report.Text, cfg.Reporter.Type)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, defaultPolicyPath, cfg.Policy.Path)
	require.Equal(t, defaultGitPath, cfg.Git.Path)
	require.Equal(t, defaultRepoDir, cfg.Git.Dir)
	require.Zero(t, cfg.Runner.Workers)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("POLICY_PATH", "/etc/policy.conf")
	t.Setenv("RUNNER_WORKERS", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/etc/policy.conf", cfg.Policy.Path)
	require.Equal(t, 3, cfg.Runner.Workers)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestPrepareAndValidate_NegativeWorkers(t *testing.T) {
	cfg := Config{Runner: RunnerConfig{Workers: -1}}
	require.ErrorIs(t, cfg.PrepareAndValidate(), ErrNegativeWorkers)
}
