package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

const (
	// DefaultServerURL is the SkillSwap API used when nothing is configured.
	DefaultServerURL = "http://localhost:8000"
	// DefaultProfileID is the profile used before anyone registers.
	DefaultProfileID int64 = 12

	configVersion = "0.1.0"
)

// Environment variables that override the config file.
const (
	EnvServerURL = "SKILLSWAP_SERVER_URL"
	EnvProfileID = "SKILLSWAP_PROFILE_ID"
	EnvLogLevel  = "SKILLSWAP_LOG_LEVEL"
	EnvInsecure  = "SKILLSWAP_INSECURE"
)

// Config represents the configuration for the SkillSwap CLI
type Config struct {
	// Version of the configuration file format
	Version string `json:"version" yaml:"version" toml:"version"`
	// ServerURL is the base URL of the SkillSwap API
	ServerURL string `json:"server_url" yaml:"server_url" toml:"server_url"`
	// ProfileID is the member the CLI acts as
	ProfileID int64 `json:"profile_id" yaml:"profile_id" toml:"profile_id"`
	// LogLevel is the zerolog level for diagnostics on stderr
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	// Insecure skips TLS certificate verification, for servers with self-signed certificates
	Insecure bool `json:"insecure,omitempty" yaml:"insecure,omitempty" toml:"insecure,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version:   configVersion,
		ServerURL: DefaultServerURL,
		ProfileID: DefaultProfileID,
	}
}

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/skillswap on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "skillswap", DefaultConfigFile), nil
}

// LoadConfig builds the effective configuration: defaults, then the config
// file if it exists, then a .env file in the working directory, then the
// SKILLSWAP_* environment variables.
func LoadConfig(file string) (*Config, error) {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	cfg, err := ReadConfigFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to read .env file: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.ServerURL = MorphServer(cfg.ServerURL)
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfigFile reads file alone, without environment overrides. Files
// ending in .toml are TOML, everything else is YAML. Missing keys keep
// their defaults.
func ReadConfigFile(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	c := DefaultConfig()
	if isTOML(file) {
		err = toml.Unmarshal(data, c)
	} else {
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	return c, nil
}

func isTOML(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".toml")
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvProfileID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %q", EnvProfileID, v)
		}
		cfg.ProfileID = id
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvInsecure); v != "" {
		insecure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %q", EnvInsecure, v)
		}
		cfg.Insecure = insecure
	}
	return nil
}

// WriteConfig writes the configuration to the specified file
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	var data []byte
	if isTOML(file) {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(cfg)
		data = []byte(sb.String())
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, data, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// ValidateConfig validates the configuration
func (cfg *Config) ValidateConfig() error {
	if cfg.ServerURL == "" {
		return errors.New("server URL is required")
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://") && !strings.HasPrefix(cfg.ServerURL, "https://") {
		return errors.New("server URL must start with http:// or https://")
	}
	if cfg.ProfileID <= 0 {
		return errors.New("profile id must be a positive number")
	}
	return nil
}

// MorphServer ensures the server URL is properly formatted
// Adds http:// prefix if missing and removes trailing slashes
func MorphServer(server string) string {
	if server == "" {
		return server
	}

	server = strings.TrimRight(server, "/")

	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "http://" + server
	}

	return server
}

// GetServerURL returns the properly formatted server URL
func (cfg *Config) GetServerURL() string {
	return MorphServer(cfg.ServerURL)
}

func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return GetDefaultConfigPath()
}

// saveProfileID records id as the configured profile, keeping the rest of
// the config file.
func saveProfileID(id int64) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}
	cfg, err := ReadConfigFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return "", err
	}
	cfg.ProfileID = id
	return path, cfg.WriteConfig(path)
}

// newConfigCmd creates the config command and its show subcommand
func newConfigCmd() *cobra.Command {
	var (
		server   string
		profile  int64
		logLevel string
	)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage CLI configuration settings like the server URL and the active profile.

Examples:
  # Use a local server and act as member 12
  skillswap config --server localhost:8000 --profile 12

  # Turn on debug logs
  skillswap config --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("server") && !cmd.Flags().Changed("profile") && !cmd.Flags().Changed("log-level") {
				return cmd.Help()
			}

			path, err := configPath()
			if err != nil {
				return fmt.Errorf("failed to get default config path: %w", err)
			}
			cfg, err := ReadConfigFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				cfg = DefaultConfig()
			} else if err != nil {
				return err
			}

			cfg.Version = configVersion
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = MorphServer(server)
			}
			if cmd.Flags().Changed("profile") {
				cfg.ProfileID = profile
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.ValidateConfig(); err != nil {
				return err
			}
			if err := cfg.WriteConfig(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"server":      cfg.ServerURL,
					"profile_id":  cfg.ProfileID,
					"config_file": path,
				})
			}
			cmd.Printf("Server configured: %s\n", cfg.ServerURL)
			cmd.Printf("Profile: %d\n", cfg.ProfileID)
			cmd.Printf("Config file: %s\n", path)
			return nil
		},
	}
	configCmd.Flags().StringVar(&server, "server", "", "Set the server URL (e.g., localhost:8000)")
	configCmd.Flags().Int64Var(&profile, "profile", 0, "Set the profile id the CLI acts as")
	configCmd.Flags().StringVar(&logLevel, "log-level", "", "Set the log level (debug, info, warn, error)")

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}
			return printResult(cmd, cfg, func() {
				cmd.Printf("Server: %s\n", cfg.ServerURL)
				cmd.Printf("Profile: %d\n", cfg.ProfileID)
				if cfg.LogLevel != "" {
					cmd.Printf("Log level: %s\n", cfg.LogLevel)
				}
				if cfg.Insecure {
					cmd.Println("TLS verification: disabled")
				}
			})
		},
	})
	return configCmd
}
