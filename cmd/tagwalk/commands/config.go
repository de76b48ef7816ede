package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Masked replaces secrets in `config show`.
const Masked = "***"

// ErrUnknownConfigKey reports a key `config set` does not manage.
var ErrUnknownConfigKey = errors.New("unknown configuration key")

// configKeys are the settings persisted in the config file.
var configKeys = []string{"api", "client-id", "client-secret", "token", "language", "cache-dir", "output"}

// Config is the persisted CLI configuration.
type Config struct {
	API          string `json:"api,omitempty"           yaml:"api,omitempty"`
	ClientID     string `json:"client-id,omitempty"     yaml:"client-id,omitempty"`
	ClientSecret string `json:"client-secret,omitempty" yaml:"client-secret,omitempty"`
	Token        string `json:"token,omitempty"         yaml:"token,omitempty"`
	Language     string `json:"language,omitempty"      yaml:"language,omitempty"`
	CacheDir     string `json:"cache-dir,omitempty"     yaml:"cache-dir,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the Tagwalk CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment, and config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.ClientSecret = mask(config.ClientSecret)
			config.Token = mask(config.Token)

			return render(cmd, config, func(w io.Writer) error {
				table := newTable(w, "Property", "Value")
				_ = table.Append("API", orNA(config.API))
				_ = table.Append("Client ID", orNA(config.ClientID))
				_ = table.Append("Client Secret", orNA(config.ClientSecret))
				_ = table.Append("Token", orNA(config.Token))
				_ = table.Append("Language", orNA(config.Language))
				_ = table.Append("Cache Dir", orNA(config.CacheDir))
				_ = table.Append("Config File", orNA(viper.ConfigFileUsed()))

				return renderTable(table)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value (" + fmt.Sprint(configKeys) + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigFile(cmd, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigFile(cmd, args[0], "")
		},
	}
}

func loadConfig() *Config {
	return &Config{
		API:          viper.GetString("api"),
		ClientID:     viper.GetString("client-id"),
		ClientSecret: viper.GetString("client-secret"),
		Token:        viper.GetString("token"),
		Language:     viper.GetString("language"),
		CacheDir:     viper.GetString("cache-dir"),
		Output:       viper.GetString("output"),
	}
}

// updateConfigFile sets key in the config file, or removes it when value is
// empty. Other keys already in the file are kept.
func updateConfigFile(cmd *cobra.Command, key, value string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	path, err := configFilePath()
	if err != nil {
		return err
	}

	settings := map[string]string{}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the CLI's own config file
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config file: %w", err)
	}

	if len(data) > 0 {
		err = yaml.Unmarshal(data, &settings)
		if err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}

	if value == "" {
		delete(settings, key)
	} else {
		settings[key] = value
	}

	data, err = yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config file: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if value == "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s in %s\n", key, path)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)
	}

	return nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}

	return Masked
}
