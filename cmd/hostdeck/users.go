package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hostdeck/internal/core/domain"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage console users (admin only)",
	}
	cmd.AddCommand(
		newUsersListCmd(a),
		newUsersGetCmd(a),
		newUsersSetRoleCmd(a),
		newUsersDeleteCmd(a),
	)
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireRole(domain.RoleAdmin); err != nil {
				return err
			}
			users, err := a.users.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
			}
			return w.Flush()
		},
	}
}

func newUsersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireRole(domain.RoleAdmin); err != nil {
				return err
			}
			u, err := a.users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:       %s\n", u.ID)
			fmt.Printf("Username: %s\n", u.Username)
			fmt.Printf("Email:    %s\n", u.Email)
			fmt.Printf("Role:     %s\n", u.Role)
			return nil
		},
	}
}

func newUsersSetRoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <id> <role>",
		Short: "Change a user's role (admin, operator, viewer)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireRole(domain.RoleAdmin); err != nil {
				return err
			}
			u, err := a.users.UpdateRole(cmd.Context(), args[0], domain.ParseRole(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("User %s is now %s\n", u.Username, u.Role)
			return nil
		},
	}
}

func newUsersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireRole(domain.RoleAdmin); err != nil {
				return err
			}
			if err := a.users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted user %s\n", args[0])
			return nil
		},
	}
}
