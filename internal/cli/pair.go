package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
	"github.com/clipsend/clipsend/internal/i18n"
)

var pairAPIURL string

// pairResponse is what the service returns for a valid pairing code.
type pairResponse struct {
	IngestToken string `json:"ingestToken"`
	GuildID     string `json:"guildId"`
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage"`
}

var pairCmd = &cobra.Command{
	Use:   "pair <code>",
	Short: "Exchange a pairing code for full settings",
	Long: `Exchange a short pairing code for the ingestion settings (token and
guild id) and save them to the config file.

Examples:
  clipsend pair ABC123 --api-url https://api.example.com/livechat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		t := i18n.T(cfg.Language)

		code := strings.TrimSpace(args[0])
		if code == "" {
			return fmt.Errorf(t.Pair.Failed, "code vide")
		}

		apiURL := pairAPIURL
		if apiURL == "" {
			apiURL = cfg.API.URL
		}
		normalized, err := urlnorm.NormalizeAPIBaseURL(apiURL)
		if err != nil {
			return err
		}

		resp, err := exchangePairingCode(cmd.Context(), normalized, code)
		if err != nil {
			return fmt.Errorf(t.Pair.Failed, err)
		}

		cfg.API.URL = normalized
		cfg.API.IngestToken = resp.IngestToken
		cfg.API.EncryptedToken = ""
		cfg.API.GuildID = resp.GuildID
		if resp.AuthorName != "" {
			cfg.API.AuthorName = resp.AuthorName
		}
		if resp.AuthorImage != "" {
			cfg.API.AuthorImage = resp.AuthorImage
		}
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓ %s", t.Pair.Exchanged))
		return nil
	},
}

func exchangePairingCode(ctx context.Context, apiURL, code string) (*pairResponse, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/pair", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	parsed := &pairResponse{}
	if err := json.Unmarshal(data, parsed); err != nil {
		return nil, err
	}
	if parsed.IngestToken == "" || parsed.GuildID == "" {
		return nil, fmt.Errorf("réponse d'appairage incomplète")
	}
	return parsed, nil
}

func init() {
	pairCmd.Flags().StringVar(&pairAPIURL, "api-url", "", "ingestion endpoint base URL")
	rootCmd.AddCommand(pairCmd)
}
