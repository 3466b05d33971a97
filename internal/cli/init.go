package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/i18n"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create clipsend config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}

		t := i18n.T(config.LoadOrDefault().Language)
		fmt.Printf(t.Config.Created+"\n", config.SavePath())
		fmt.Println("Next:")
		fmt.Println("  clipsend config set api.url https://...")
		fmt.Println("  clipsend config set api.guild_id ...")
		fmt.Println("  clipsend config set-token")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
