package cli

import (
	"git.handmade.network/hmn/spoilers/src/logging"
	"github.com/spf13/cobra"
)

var RootCommand = &cobra.Command{
	Use:   "spoilers",
	Short: "Render HMN post markdown, spoilers included",
	Run: func(cmd *cobra.Command, args []string) {
		logging.Debug().Msg("no command given")
		cmd.Help()
	},
}
