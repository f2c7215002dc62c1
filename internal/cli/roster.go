package cli

import (
	"errors"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mergington/internal/client/roster"
)

var RosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List all accounts (administrators only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		if _, err := requireIdentity(cmd.Context(), ctrl); err != nil {
			return err
		}

		vm := &roster.ViewModel{API: ctrl.API, Store: ctrl.Store, Invalidate: ctrl.Invalidate}
		if !vm.CanView() {
			return errors.New("the roster is only available to administrators")
		}

		accounts, err := vm.Fetch(cmd.Context())
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Name", "Email", "Role", "Active"})
		for _, a := range accounts {
			tw.AppendRow(table.Row{a.FullName, a.Email, a.Role, a.IsActive})
		}
		tw.SetStyle(table.StyleLight)
		tw.Render()
		return nil
	},
}
