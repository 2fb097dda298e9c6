package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hostdeck/internal/core/domain"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(a),
		newProjectsGetCmd(a),
		newProjectsCreateCmd(a),
		newProjectsUpdateCmd(a),
		newProjectsDeleteCmd(a),
	)
	return cmd
}

func newProjectsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			projects, err := a.projects.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSERVERS\tDURATION")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					p.ID, p.Name, p.Status, len(p.ServerIDs), p.Duration)
			}
			return w.Flush()
		},
	}
}

func newProjectsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			p, err := a.projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:       %s\n", p.ID)
			fmt.Printf("Name:     %s\n", p.Name)
			fmt.Printf("Status:   %s\n", p.Status)
			fmt.Printf("Servers:  %s\n", strings.Join(p.ServerIDs, ", "))
			fmt.Printf("Duration: %s\n", p.Duration)
			return nil
		},
	}
}

func newProjectsCreateCmd(a *app) *cobra.Command {
	var in domain.ProjectInput
	var status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requirePermission("project:write"); err != nil {
				return err
			}
			in.Status = domain.ParseProjectStatus(status)
			p, err := a.projects.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "project name")
	cmd.Flags().StringSliceVar(&in.ServerIDs, "servers", nil, "attached server IDs")
	cmd.Flags().StringVar(&in.Duration, "duration", "", "planned duration")
	cmd.Flags().StringVar(&status, "status", "PLANNED", "project status")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCmd(a *app) *cobra.Command {
	var in domain.ProjectInput
	var status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("project:write"); err != nil {
				return err
			}
			if status != "" {
				in.Status = domain.ParseProjectStatus(status)
			}
			p, err := a.projects.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated project %s (%s)\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "project name")
	cmd.Flags().StringSliceVar(&in.ServerIDs, "servers", nil, "attached server IDs")
	cmd.Flags().StringVar(&in.Duration, "duration", "", "planned duration")
	cmd.Flags().StringVar(&status, "status", "", "project status")
	return cmd
}

func newProjectsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("project:delete"); err != nil {
				return err
			}
			if err := a.projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted project %s\n", args[0])
			return nil
		},
	}
}
