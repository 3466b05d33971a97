package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsend/clipsend/internal/updater"
)

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update clipsend to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkOnly {
			latest, available, err := updater.CheckUpdate()
			if err != nil {
				return err
			}
			if !available {
				fmt.Println("Already up to date")
				return nil
			}
			fmt.Printf("Update available: %s\n", latest.Version())
			fmt.Println("Run 'clipsend update' to install it")
			return nil
		}
		return updater.Update()
	},
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "check for updates without installing")
	rootCmd.AddCommand(updateCmd)
}
