package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/reef/internal/accounts"
	"github.com/melih-ucgun/reef/internal/crypto"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SF_ADMIN_PASSWORD", "hunter2")

	path := writeConfig(t, t.TempDir(), "reef.yaml", `
clusters:
  - name: prod
    mvip: 10.0.0.5
    username: admin
    password: $SF_ADMIN_PASSWORD
accounts:
  - name: ops1
    user_type: cluster
    role: administrator
    password: p1
  - id: 7
    state: absent
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Clusters, 1)
	assert.Equal(t, "hunter2", cfg.Clusters[0].Password, "env vars must expand")

	require.Len(t, cfg.Accounts, 2)
	desired := cfg.Accounts[0].Desired()
	assert.Equal(t, accounts.StatePresent, desired.State, "state defaults to present")
	assert.Equal(t, "ops1", desired.Name)

	second := cfg.Accounts[1].Desired()
	assert.Equal(t, accounts.StateAbsent, second.State)
	require.NotNil(t, second.ID)
	assert.Equal(t, int64(7), *second.ID)
}

func TestLoadConfig_Includes(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "extra.yaml", `
accounts:
  - name: auditor1
    user_type: ldap
`)
	path := writeConfig(t, dir, "reef.yaml", `
includes:
  - extra.yaml
clusters:
  - name: prod
    mvip: 10.0.0.5
    username: admin
    password: pw
accounts:
  - name: ops1
    user_type: cluster
    password: p1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, "auditor1", cfg.Accounts[0].Name, "included accounts come first")
	assert.Equal(t, "ops1", cfg.Accounts[1].Name)
}

func TestLoadConfig_EncryptedPassword(t *testing.T) {
	t.Setenv("REEF_MASTER_KEY", "master")

	sealed, err := crypto.Encrypt("p1", "master")
	require.NoError(t, err)

	path := writeConfig(t, t.TempDir(), "reef.yaml", `
clusters:
  - name: prod
    mvip: 10.0.0.5
    username: admin
    password: pw
accounts:
  - name: ops1
    user_type: cluster
    password: `+sealed+`
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "p1", cfg.Accounts[0].Password)
}

func TestLoadConfig_EncryptedWithoutKeyFails(t *testing.T) {
	t.Setenv("REEF_MASTER_KEY", "")
	t.Setenv("HOME", t.TempDir()) // no ~/.reef/master.key either

	sealed, err := crypto.Encrypt("p1", "master")
	require.NoError(t, err)

	path := writeConfig(t, t.TempDir(), "reef.yaml", `
accounts:
  - name: ops1
    user_type: cluster
    password: `+sealed+`
`)

	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestClusterSelection(t *testing.T) {
	cfg := &Config{Clusters: []Cluster{
		{Name: "prod", MVIP: "10.0.0.5"},
		{Name: "lab", MVIP: "10.0.1.5"},
	}}

	first, err := cfg.Cluster("")
	require.NoError(t, err)
	assert.Equal(t, "prod", first.Name)

	lab, err := cfg.Cluster("lab")
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.5", lab.MVIP)

	_, err = cfg.Cluster("staging")
	assert.Error(t, err)

	empty := &Config{}
	_, err = empty.Cluster("")
	assert.Error(t, err)
}
