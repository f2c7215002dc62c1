package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mergington/internal/client/controller"
)

var (
	loginEmail    string
	loginPassword string
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			if email, err = prompt("Email"); err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			if password, err = prompt("Password"); err != nil {
				return err
			}
		}

		id, err := ctrl.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("Logged in as %s (%s)", id.FullName, id.Role))
		return nil
	},
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerConfirm  string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a student account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}

		name := registerName
		if name == "" {
			if name, err = prompt("Full name"); err != nil {
				return err
			}
		}
		email := registerEmail
		if email == "" {
			if email, err = prompt("Email (@mergington.edu)"); err != nil {
				return err
			}
		}
		password := registerPassword
		if password == "" {
			if password, err = prompt("Password"); err != nil {
				return err
			}
		}
		confirm := registerConfirm
		if confirm == "" {
			if confirm, err = prompt("Confirm password"); err != nil {
				return err
			}
		}

		if err := ctrl.Register(cmd.Context(), name, email, password, confirm); err != nil {
			return err
		}

		printSuccess("Registration successful!")
		// Linger briefly, then hand the user off to the login flow
		time.Sleep(controller.RegisterRedirectDelay)
		fmt.Println(mutedStyle.Render("You can now log in with 'portal login'."))
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		ctrl.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := portalSession()
		if err != nil {
			return err
		}
		id, err := requireIdentity(cmd.Context(), ctrl)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s)\n", id.FullName, id.Email, id.Role)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	LoginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	RegisterCmd.Flags().StringVar(&registerName, "name", "", "full name")
	RegisterCmd.Flags().StringVar(&registerEmail, "email", "", "account email (@mergington.edu)")
	RegisterCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
	RegisterCmd.Flags().StringVar(&registerConfirm, "confirm", "", "password confirmation")
}
