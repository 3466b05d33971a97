package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/capture"
	"github.com/clipsend/clipsend/internal/core/ingest"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
	"github.com/clipsend/clipsend/internal/core/version"
	"github.com/clipsend/clipsend/internal/i18n"
	"github.com/clipsend/clipsend/internal/messages"
)

var (
	quickSource string
	quickPin    string
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:     "clipsend [url]",
	Short:   "Forward social media post URLs to a LiveChat ingestion endpoint",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		if err := runQuick(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&quickSource, "source", "s", messages.SourceUnknown, "send source (youtube, tiktok, twitter, popup, context-menu)")
	rootCmd.Flags().StringVar(&quickPin, "pin", "", "PIN to unlock an encrypted token")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "normalize the URL without sending")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadSettings resolves the config into validated settings, unlocking an
// encrypted token with the --pin flag when needed.
func loadSettings(pin string) (*config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		t := i18n.T(config.LoadOrDefault().Language)
		return nil, fmt.Errorf("%s %s", t.Config.NotFound, t.Config.RunInitHint)
	}

	api := cfg.API
	if cfg.TokenEncrypted() {
		if pin == "" {
			return nil, fmt.Errorf("le token est chiffré; passe --pin pour le déverrouiller")
		}
		api, err = cfg.DecryptToken(pin)
		if err != nil {
			return nil, err
		}
	}

	return config.NormalizeSettings(api)
}

func runQuick(rawURL string) error {
	cfg := config.LoadOrDefault()
	t := i18n.T(cfg.Language)

	var target string
	if quickSource == messages.SourceTikTok {
		// A tiktok-sourced send must land on a concrete video/photo page.
		target = capture.NormalizePageURL(rawURL)
		if target == "" {
			return fmt.Errorf("%s", t.Errors.InvalidTikTokURL)
		}
	} else {
		target = urlnorm.ResolveIngestTarget(rawURL, nil)
		if target == "" {
			return fmt.Errorf("%s", t.Errors.InvalidURL)
		}
	}

	if dryRun {
		fmt.Printf(t.Send.ResolvedTarget+"\n", target)
		return nil
	}

	st, err := loadSettings(quickPin)
	if err != nil {
		return err
	}

	fmt.Println(t.Send.Sending)
	client := ingest.NewClient()
	result := client.Send(context.Background(), ingest.Quick(target), st)

	return printResult(result)
}

func printResult(result ingest.Result) error {
	if result.OK {
		fmt.Println(color.GreenString("✓ %s", result.Message))
		return nil
	}
	fmt.Fprintln(os.Stderr, color.RedString("✗ [%s] %s", result.Failure.Code, result.Failure.Message))
	os.Exit(1)
	return nil
}
