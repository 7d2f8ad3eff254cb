// Package config loads reef.yaml: the clusters reef can talk to and the
// admin accounts that should exist on them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/melih-ucgun/reef/internal/accounts"
	"github.com/melih-ucgun/reef/internal/crypto"
)

// Config represents the root structure of reef.yaml.
type Config struct {
	Vars     map[string]string `yaml:"vars"`     // Global variables, exported to the environment
	Includes []string          `yaml:"includes"` // Other config files to merge in
	Clusters []Cluster         `yaml:"clusters"` // Target clusters; first one is the default
	Accounts []Account         `yaml:"accounts"` // Desired admin accounts
}

// Cluster holds connection information for one cluster endpoint.
type Cluster struct {
	Name       string `yaml:"name"`
	MVIP       string `yaml:"mvip"`
	APIVersion string `yaml:"api_version"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"` // expandable and encryptable
}

// Account is the YAML form of one desired admin account.
type Account struct {
	Name     string   `yaml:"name"`
	ID       *int64   `yaml:"id"`
	State    string   `yaml:"state"` // defaults to present
	UserType string   `yaml:"user_type"`
	Role     string   `yaml:"role"`
	Password string   `yaml:"password"`
	Access   []string `yaml:"access"` // explicit override; wins over role
	When     string   `yaml:"when"`
}

// Desired converts the YAML record into the reconciler's input.
func (a Account) Desired() accounts.DesiredAccount {
	state := a.State
	if state == "" {
		state = accounts.StatePresent
	}
	return accounts.DesiredAccount{
		State:    state,
		Name:     a.Name,
		ID:       a.ID,
		UserType: a.UserType,
		Role:     a.Role,
		Password: a.Password,
		Access:   a.Access,
		When:     a.When,
	}
}

// Cluster returns the named cluster entry, or the first one when name is
// empty.
func (c *Config) Cluster(name string) (*Cluster, error) {
	if len(c.Clusters) == 0 {
		return nil, fmt.Errorf("no clusters defined in config")
	}
	if name == "" {
		return &c.Clusters[0], nil
	}
	for i := range c.Clusters {
		if c.Clusters[i].Name == name {
			return &c.Clusters[i], nil
		}
	}
	return nil, fmt.Errorf("cluster %q not found in config", name)
}

// LoadConfig reads the YAML file at the specified path and converts it
// into a Config struct. A .env next to the config file is loaded first so
// $VAR references in the YAML resolve.
func LoadConfig(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Load .env next to the config file if present, otherwise let
	// godotenv look in the working directory.
	envPath := filepath.Join(filepath.Dir(absPath), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if loadErr := godotenv.Load(envPath); loadErr != nil {
			fmt.Printf("Warning: failed to load .env file: %v\n", loadErr)
		}
	} else {
		_ = godotenv.Load() // ignore error (no file found)
	}

	visited := make(map[string]bool)
	cfg, err := loadConfigRecursive(absPath, visited)
	if err != nil {
		return nil, err
	}

	expandConfig(cfg)
	if err := decryptConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigRecursive(path string, visited map[string]bool) (*Config, error) {
	if visited[path] {
		return &Config{}, nil
	}
	visited[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file read error (%s): %w", path, err)
	}
	if len(data) == 0 {
		return &Config{}, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("yaml parse error (%s): %w", path, err)
	}

	baseDir := filepath.Dir(path)
	var allClusters []Cluster
	var allAccounts []Account

	for _, includePath := range cfg.Includes {
		absIncludePath, err := filepath.Abs(filepath.Join(baseDir, os.ExpandEnv(includePath)))
		if err != nil {
			return nil, err
		}

		subCfg, err := loadConfigRecursive(absIncludePath, visited)
		if err != nil {
			return nil, err
		}

		allClusters = append(allClusters, subCfg.Clusters...)
		allAccounts = append(allAccounts, subCfg.Accounts...)

		if cfg.Vars == nil {
			cfg.Vars = make(map[string]string)
		}
		for k, v := range subCfg.Vars {
			if _, exists := cfg.Vars[k]; !exists {
				cfg.Vars[k] = v
			}
		}
	}

	cfg.Clusters = append(allClusters, cfg.Clusters...)
	cfg.Accounts = append(allAccounts, cfg.Accounts...)

	return &cfg, nil
}

// expandConfig performs env var substitution on all string values.
func expandConfig(cfg *Config) {
	for k, v := range cfg.Vars {
		expanded := os.ExpandEnv(v)
		cfg.Vars[k] = expanded
		// Export so later fields (and conditions) can reference them.
		os.Setenv(k, expanded)
	}

	for i := range cfg.Clusters {
		cl := &cfg.Clusters[i]
		cl.Name = os.ExpandEnv(cl.Name)
		cl.MVIP = os.ExpandEnv(cl.MVIP)
		cl.Username = os.ExpandEnv(cl.Username)
		cl.Password = os.ExpandEnv(cl.Password)
	}

	for i := range cfg.Accounts {
		a := &cfg.Accounts[i]
		a.Name = os.ExpandEnv(a.Name)
		a.State = os.ExpandEnv(a.State)
		a.UserType = os.ExpandEnv(a.UserType)
		a.Role = os.ExpandEnv(a.Role)
		a.Password = os.ExpandEnv(a.Password)
		for j := range a.Access {
			a.Access[j] = os.ExpandEnv(a.Access[j])
		}
	}
}

// decryptConfig resolves REEF[age]: values. Encrypted content without a
// master key is an error: passing ciphertext to the cluster as a literal
// password would be worse than failing.
func decryptConfig(cfg *Config) error {
	if !hasEncryptedContent(cfg) {
		return nil
	}

	key := getMasterKey()
	if key == "" {
		return fmt.Errorf("config contains encrypted values but no master key is available (set REEF_MASTER_KEY)")
	}

	for i := range cfg.Clusters {
		if crypto.IsEncrypted(cfg.Clusters[i].Password) {
			val, err := crypto.Decrypt(cfg.Clusters[i].Password, key)
			if err != nil {
				return fmt.Errorf("decrypting password for cluster %q: %w", cfg.Clusters[i].Name, err)
			}
			cfg.Clusters[i].Password = val
		}
	}

	for i := range cfg.Accounts {
		if crypto.IsEncrypted(cfg.Accounts[i].Password) {
			val, err := crypto.Decrypt(cfg.Accounts[i].Password, key)
			if err != nil {
				return fmt.Errorf("decrypting password for account %q: %w", cfg.Accounts[i].Name, err)
			}
			cfg.Accounts[i].Password = val
		}
	}

	return nil
}

func hasEncryptedContent(cfg *Config) bool {
	for _, cl := range cfg.Clusters {
		if crypto.IsEncrypted(cl.Password) {
			return true
		}
	}
	for _, a := range cfg.Accounts {
		if crypto.IsEncrypted(a.Password) {
			return true
		}
	}
	return false
}

func getMasterKey() string {
	// 1. Env var
	if key := os.Getenv("REEF_MASTER_KEY"); key != "" {
		return key
	}

	// 2. File (~/.reef/master.key)
	home, err := os.UserHomeDir()
	if err == nil {
		keyPath := filepath.Join(home, ".reef", "master.key")
		if content, err := os.ReadFile(keyPath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	// 3. Interactive prompt
	if isInteractive() {
		pterm.Println()
		pterm.Warning.Println("Encrypted content detected but REEF_MASTER_KEY not found.")
		key, err := pterm.DefaultInteractiveTextInput.
			WithMask("*").
			WithDefaultText("Enter master key for decryption").
			Show()
		if err == nil && key != "" {
			return key
		}
	}

	return ""
}

func isInteractive() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
