package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mergington/internal/client/enroll"
)

var ActivitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List activities with capacity and your enrollment",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		if _, err := requireIdentity(cmd.Context(), ctrl); err != nil {
			return err
		}

		vm := &enroll.ViewModel{API: ctrl.API, Store: ctrl.Store, Invalidate: ctrl.Invalidate}
		catalog, err := vm.FetchCatalog(cmd.Context())
		if err != nil {
			return err
		}

		renderActivityTable(vm.Rows(catalog))
		return nil
	},
}

func renderActivityTable(rows []enroll.Row) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Activity", "Schedule", "Enrolled", "Spots Left", "Status"})
	for _, row := range rows {
		tw.AppendRow(table.Row{
			row.Name,
			row.Schedule,
			fmt.Sprintf("%d/%d", len(row.Participants), row.MaxParticipants),
			row.SpotsLeft,
			rowStatus(row),
		})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

func rowStatus(row enroll.Row) string {
	switch {
	case row.CanLeave:
		return "enrolled"
	case row.Full:
		return "full"
	case row.CanJoin:
		return "open"
	default:
		return ""
	}
}

var SignupCmd = &cobra.Command{
	Use:   "signup <activity>",
	Short: "Sign up for an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		if _, err := requireIdentity(cmd.Context(), ctrl); err != nil {
			return err
		}

		vm := &enroll.ViewModel{API: ctrl.API, Store: ctrl.Store, Invalidate: ctrl.Invalidate}
		message, catalog, err := vm.Signup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printSuccess(message)
		if catalog != nil {
			renderActivityTable(vm.Rows(catalog))
		}
		return nil
	},
}

var LeaveCmd = &cobra.Command{
	Use:   "leave <activity>",
	Short: "Unregister from an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		if _, err := requireIdentity(cmd.Context(), ctrl); err != nil {
			return err
		}

		vm := &enroll.ViewModel{API: ctrl.API, Store: ctrl.Store, Invalidate: ctrl.Invalidate}
		message, catalog, err := vm.Unregister(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printSuccess(message)
		if catalog != nil {
			renderActivityTable(vm.Rows(catalog))
		}
		return nil
	},
}
