package cli

import (
	"github.com/spf13/cobra"

	"mergington/internal/tui"
)

var BrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse activities interactively",
	Long: `Opens an interactive view of the activity catalog. Move with the arrow
keys, press enter to join or leave the selected activity, r to refresh,
and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		id, err := requireIdentity(cmd.Context(), ctrl)
		if err != nil {
			return err
		}
		return tui.RunBrowse(ctrl, id)
	},
}
