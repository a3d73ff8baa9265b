package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reservat/provider-console/internal/console/session"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config represents the configuration for the reservat CLI.
// The access token is not kept here; it lives in the credentials file owned by
// the session token store.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerURL is the base URL of the Reservat backend API
	ServerURL string `yaml:"server_url"`
	// BucketURL is the base URL of the photo bucket
	BucketURL string `yaml:"bucket_url"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/reservat on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "reservat", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file
// If no file is specified, it uses the default config location.
// RESERVAT_SERVER_URL and RESERVAT_BUCKET_URL override the file values.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if env := os.Getenv("RESERVAT_SERVER_URL"); env != "" {
		c.ServerURL = env
	}
	if env := os.Getenv("RESERVAT_BUCKET_URL"); env != "" {
		c.BucketURL = env
	}

	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}

	c.ServerURL = MorphServer(c.ServerURL)

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// MorphServer ensures the server URL is properly formatted
// Adds https:// prefix if missing and removes trailing slashes
func MorphServer(server string) string {
	if server == "" {
		return server
	}

	server = strings.TrimRight(server, "/")

	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	return server
}

// clientConfig adapts the CLI config and the credentials file to the
// httpclient Configurator. Token and expiry are read through the token store so
// a login from another invocation is picked up without reloading anything.
type clientConfig struct {
	serverURL string
	store     session.TokenStore
}

func (c *clientConfig) GetServerURL() string {
	return MorphServer(c.serverURL)
}

func (c *clientConfig) GetToken() string {
	token, err := c.store.Read()
	if err != nil {
		return ""
	}
	return token
}

func (c *clientConfig) GetTokenExpiry() time.Time {
	token, err := c.store.Read()
	if err != nil || token == "" {
		return time.Time{}
	}
	sess, parseErr := session.Parse(token)
	if parseErr != nil {
		return time.Time{}
	}
	return sess.Claims.Expiry
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Manage CLI configuration settings like the backend server and photo bucket URLs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverFlag, _ := cmd.Flags().GetString("server")
		bucketFlag, _ := cmd.Flags().GetString("bucket")
		if serverFlag != "" {
			return setServerConfig(serverFlag, bucketFlag)
		}

		cmd.Help()
		return nil
	},
}

func init() {
	configCmd.Flags().String("server", "", "Set the backend server URL (e.g., api.reservat.example.com)")
	configCmd.Flags().String("bucket", "", "Set the photo bucket base URL")

	rootCmd.AddCommand(configCmd)
}

// setServerConfig writes a fresh configuration file pointing at the given server
func setServerConfig(server, bucket string) error {
	configPath := configFile
	if configPath == "" {
		var err error
		configPath, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	cfg := &Config{
		Version:   "0.1.0",
		ServerURL: MorphServer(server),
		BucketURL: strings.TrimRight(bucket, "/"),
	}

	if err := cfg.WriteConfig(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"server":      cfg.ServerURL,
			"bucket":      cfg.BucketURL,
			"config_file": configPath,
		})
	} else {
		fmt.Printf("Server configured: %s\n", cfg.ServerURL)
		if cfg.BucketURL != "" {
			fmt.Printf("Bucket configured: %s\n", cfg.BucketURL)
		}
		fmt.Printf("Config file: %s\n", configPath)
	}

	return nil
}
