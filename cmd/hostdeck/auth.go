package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hostdeck/internal/core/services"
)

func newLoginCmd(a *app) *cobra.Command {
	var passwordFlag string
	cmd := &cobra.Command{
		Use:   "login [username-or-email]",
		Short: "Sign in to the backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := ""
			if len(args) > 0 {
				username = args[0]
			} else {
				var err error
				username, err = promptLine("Username or email: ")
				if err != nil {
					return err
				}
			}

			password := passwordFlag
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			result := a.auth.Login(cmd.Context(), username, password)
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}

			u := result.User
			fmt.Printf("Signed in as %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&passwordFlag, "password", "", "password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var email, roleFlag, passwordFlag string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account on the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := passwordFlag
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
				confirm, err := promptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			result := a.auth.Register(cmd.Context(), services.RegisterParams{
				Username: args[0],
				Email:    email,
				Password: password,
				Role:     roleFlag,
			})
			if !result.Success {
				return fmt.Errorf("%s", result.Message)
			}
			fmt.Println("Account created. Run 'hostdeck login' to sign in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&roleFlag, "role", "", "requested role (admin, operator, viewer)")
	cmd.Flags().StringVar(&passwordFlag, "password", "", "password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.auth.Logout()
			fmt.Println("Signed out. Run 'hostdeck login' to sign in again.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			state := a.auth.AuthState()
			if !state.IsAuthenticated {
				fmt.Println("Not signed in.")
				return nil
			}
			u := state.User
			fmt.Printf("User:        %s (%s)\n", u.Username, u.Name)
			fmt.Printf("Email:       %s\n", u.Email)
			fmt.Printf("Role:        %s\n", u.Role)
			if len(u.Permissions) > 0 {
				fmt.Printf("Permissions: %s\n", strings.Join(u.Permissions, ", "))
			}
			return nil
		},
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo on a terminal, falling back to a plain
// line read when stdin is a pipe.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Print(prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
