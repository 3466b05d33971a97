package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/ingest"
	"github.com/clipsend/clipsend/internal/core/urlnorm"
	"github.com/clipsend/clipsend/internal/i18n"
)

var (
	composeText    string
	composeRefresh bool
	composeBoard   bool
	composePin     string
	composeDraft   bool
	saveDraftOnly  bool
)

var composeCmd = &cobra.Command{
	Use:   "compose [url]",
	Short: "Send a URL with an optional caption",
	Long: `Send a URL to LiveChat with an optional caption and flags.

Examples:
  clipsend compose https://youtu.be/abc123 -t "regarde ça"
  clipsend compose https://youtu.be/abc123 --force-refresh
  clipsend compose https://youtu.be/abc123 --save-draft
  clipsend compose --draft             # send the saved draft`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		t := i18n.T(cfg.Language)

		var rawURL string
		switch {
		case composeDraft:
			draft, err := config.LoadDraft()
			if err != nil {
				return err
			}
			if draft == nil {
				return fmt.Errorf("%s", t.Send.NoDraft)
			}
			rawURL = draft.URL
			if composeText == "" {
				composeText = draft.Text
			}
			if !composeRefresh {
				composeRefresh = draft.ForceRefresh
			}
			if !composeBoard {
				composeBoard = draft.SaveToBoard
			}
		case len(args) == 1:
			rawURL = args[0]
		default:
			return cmd.Help()
		}

		target := urlnorm.ResolveIngestTarget(rawURL, nil)
		if target == "" {
			return fmt.Errorf("%s", t.Errors.InvalidURL)
		}

		if saveDraftOnly {
			err := config.SaveDraft(&config.ComposeDraft{
				URL:          target,
				Text:         composeText,
				ForceRefresh: composeRefresh,
				SaveToBoard:  composeBoard,
				Source:       "cli",
			})
			if err != nil {
				return err
			}
			fmt.Println(t.Send.DraftSaved)
			return nil
		}

		st, err := loadSettings(composePin)
		if err != nil {
			return err
		}

		fmt.Println(t.Send.Sending)
		client := ingest.NewClient()
		result := client.Send(context.Background(), ingest.Compose(target, composeText, composeRefresh), st)

		if result.OK {
			if err := config.ClearDraft(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}
		return printResult(result)
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Show or clear the pending compose draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := i18n.T(config.LoadOrDefault().Language)

		draft, err := config.LoadDraft()
		if err != nil {
			return err
		}
		if draft == nil {
			fmt.Println(t.Send.NoDraft)
			return nil
		}
		fmt.Printf("URL:          %s\n", draft.URL)
		if draft.Text != "" {
			fmt.Printf("Texte:        %s\n", draft.Text)
		}
		fmt.Printf("ForceRefresh: %v\n", draft.ForceRefresh)
		fmt.Printf("SaveToBoard:  %v\n", draft.SaveToBoard)
		fmt.Printf("Source:       %s\n", draft.Source)
		return nil
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the pending compose draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := i18n.T(config.LoadOrDefault().Language)
		if err := config.ClearDraft(); err != nil {
			return err
		}
		fmt.Println(t.Send.DraftCleared)
		return nil
	},
}

func init() {
	composeCmd.Flags().StringVarP(&composeText, "text", "t", "", "caption text")
	composeCmd.Flags().BoolVar(&composeRefresh, "force-refresh", false, "ask the service to refresh its preview")
	composeCmd.Flags().BoolVar(&composeBoard, "save-to-board", false, "also pin the send to the board")
	composeCmd.Flags().StringVar(&composePin, "pin", "", "PIN to unlock an encrypted token")
	composeCmd.Flags().BoolVar(&composeDraft, "draft", false, "send the saved draft")
	composeCmd.Flags().BoolVar(&saveDraftOnly, "save-draft", false, "save as draft instead of sending")

	draftCmd.AddCommand(draftClearCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(draftCmd)
}
