package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/crypto"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
	"github.com/clipsend/clipsend/internal/i18n"
)

var (
	configTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	configDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage clipsend configuration",
	Long:  "View and modify clipsend settings, including the ingestion endpoint",
}

// clipsend config show - show current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()

		fmt.Println(configTitleStyle.Render("Current configuration:"))
		fmt.Printf("  Language:     %s\n", cfg.Language)
		fmt.Printf("  API URL:      %s\n", cfg.API.URL)
		fmt.Printf("  Guild ID:     %s\n", cfg.API.GuildID)
		fmt.Printf("  Author name:  %s\n", cfg.API.AuthorName)
		if cfg.API.AuthorImage != "" {
			fmt.Printf("  Author image: %s\n", cfg.API.AuthorImage)
		}
		switch {
		case cfg.TokenEncrypted():
			fmt.Printf("  Token:        %s\n", configDimStyle.Render("(chiffré)"))
		case cfg.API.IngestToken != "":
			fmt.Printf("  Token:        %s\n", maskToken(cfg.API.IngestToken))
		default:
			fmt.Printf("  Token:        %s\n", configDimStyle.Render("(absent)"))
		}
		if cfg.Server.Port > 0 {
			fmt.Printf("  Server port:  %d\n", cfg.Server.Port)
		}
		fmt.Printf("  Config:       %s\n", configDimStyle.Render(config.SavePath()))
	},
}

// clipsend config path - show config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.SavePath())
	},
}

// clipsend config set KEY VALUE - set a config value
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.yml.

Supported keys:
  language          Language code (fr, en)
  api.url           Ingestion endpoint base URL
  api.guild_id      Target guild identifier
  api.author_name   Display name attached to sends
  api.author_image  Avatar URL attached to sends
  server.port       Relay server listen port
  server.api_key    Relay server API key

The ingest token is set with 'clipsend config set-token' so it never lands
in shell history.

Examples:
  clipsend config set api.url https://api.example.com/livechat
  clipsend config set api.guild_id 1234567890`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		cfg := config.LoadOrDefault()

		if err := setConfigValue(cfg, key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Set %s = %s\n", key, value)
	},
}

// clipsend config get KEY - get a config value
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()

		value, err := getConfigValue(cfg, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(value)
	},
}

// clipsend config unset KEY - unset/clear a config value
var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		cfg := config.LoadOrDefault()

		if err := unsetConfigValue(cfg, key); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Unset %s\n", key)
	},
}

var encryptToken bool

// clipsend config set-token - read the ingest token without echoing it
var configSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Set the ingest token (hidden input)",
	Long: `Read the ingest token from the terminal without echoing it.

With --encrypt, the token is stored encrypted under a 4-digit PIN; sends
then need the --pin flag to unlock it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		t := i18n.T(cfg.Language)

		fmt.Print(t.Config.TokenPrompt + " ")
		token, err := readSecret()
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("token vide")
		}

		if encryptToken {
			fmt.Print(t.Config.PinPrompt + " ")
			pin, err := readSecret()
			if err != nil {
				return err
			}
			encrypted, err := crypto.EncryptToken(token, pin)
			if err != nil {
				return err
			}
			cfg.API.EncryptedToken = encrypted
			cfg.API.IngestToken = ""
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Println(t.Config.TokenEncrypted)
			return nil
		}

		cfg.API.IngestToken = token
		cfg.API.EncryptedToken = ""
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf(t.Config.Saved+"\n", config.SavePath())
		return nil
	},
}

// readSecret reads a line without echo when stdin is a terminal, falling
// back to plain buffered reads (pipes, tests).
func readSecret() (string, error) {
	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// setConfigValue sets a config value by key
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "language":
		cfg.Language = value
	case "api.url":
		normalized, err := urlnorm.NormalizeAPIBaseURL(value)
		if err != nil {
			return err
		}
		cfg.API.URL = normalized
	case "api.guild_id":
		cfg.API.GuildID = value
	case "api.author_name":
		cfg.API.AuthorName = value
	case "api.author_image":
		cfg.API.AuthorImage = value
	case "server.port":
		var port int
		if _, err := fmt.Sscanf(value, "%d", &port); err != nil {
			return fmt.Errorf("invalid port number: %s", value)
		}
		cfg.Server.Port = port
	case "server.api_key":
		cfg.Server.APIKey = value
	default:
		return fmt.Errorf("unknown config key: %s\nRun 'clipsend config set --help' to see supported keys", key)
	}
	return nil
}

// getConfigValue gets a config value by key
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "language":
		return cfg.Language, nil
	case "api.url":
		return cfg.API.URL, nil
	case "api.guild_id":
		return cfg.API.GuildID, nil
	case "api.author_name":
		return cfg.API.AuthorName, nil
	case "api.author_image":
		return cfg.API.AuthorImage, nil
	case "server.port":
		return fmt.Sprintf("%d", cfg.Server.Port), nil
	case "server.api_key":
		return cfg.Server.APIKey, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// unsetConfigValue clears a config value by key
func unsetConfigValue(cfg *config.Config, key string) error {
	switch key {
	case "language":
		cfg.Language = ""
	case "api.url":
		cfg.API.URL = ""
	case "api.guild_id":
		cfg.API.GuildID = ""
	case "api.author_name":
		cfg.API.AuthorName = ""
	case "api.author_image":
		cfg.API.AuthorImage = ""
	case "api.token":
		cfg.API.IngestToken = ""
		cfg.API.EncryptedToken = ""
	case "server.port":
		cfg.Server.Port = 0
	case "server.api_key":
		cfg.Server.APIKey = ""
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func init() {
	configSetTokenCmd.Flags().BoolVar(&encryptToken, "encrypt", false, "encrypt the token under a 4-digit PIN")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configSetTokenCmd)
	rootCmd.AddCommand(configCmd)
}
