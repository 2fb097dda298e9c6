package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hostdeck/internal/core/domain"
)

func newAlertsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage alert rules and events",
	}

	rules := &cobra.Command{Use: "rules", Short: "Manage alert rules"}
	rules.AddCommand(
		newRulesListCmd(a),
		newRulesCreateCmd(a),
		newRulesUpdateCmd(a),
		newRulesDeleteCmd(a),
		newRulesToggleCmd(a, "enable", true),
		newRulesToggleCmd(a, "disable", false),
	)

	events := &cobra.Command{Use: "events", Short: "Inspect alert events"}
	events.AddCommand(
		newEventsListCmd(a),
		newEventsAckCmd(a),
		newEventsResolveCmd(a),
	)

	cmd.AddCommand(rules, events)
	return cmd
}

func newRulesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alert rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			rules, err := a.rules.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMETRIC\tCONDITION\tTHRESHOLD\tSEVERITY\tENABLED")
			for _, r := range rules {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\t%t\n",
					r.ID, r.Name, r.Metric, r.Condition, r.Threshold, r.Severity, r.Enabled)
			}
			return w.Flush()
		},
	}
}

func ruleInputFlags(cmd *cobra.Command, in *domain.AlertRuleInput, metric, condition, severity *string) {
	cmd.Flags().StringVar(&in.Name, "name", "", "rule name")
	cmd.Flags().StringVar(&in.Description, "description", "", "rule description")
	cmd.Flags().StringVar(metric, "metric", "cpu", "metric (cpu, memory, disk, network, temperature, service)")
	cmd.Flags().StringVar(condition, "condition", "greater_than", "comparator (greater_than, less_than, equals, not_equals)")
	cmd.Flags().Float64Var(&in.Threshold, "threshold", 0, "threshold value")
	cmd.Flags().StringVar(severity, "severity", "medium", "severity (low, medium, high, critical)")
	cmd.Flags().IntVar(&in.Duration, "duration", 5, "minutes the condition must hold")
}

func newRulesCreateCmd(a *app) *cobra.Command {
	var in domain.AlertRuleInput
	var metric, condition, severity string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an alert rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requirePermission("alert:write"); err != nil {
				return err
			}
			in.Metric = domain.Metric(metric)
			in.Condition = domain.Condition(condition)
			in.Severity = domain.Severity(severity)
			in.Enabled = true
			r, err := a.rules.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created alert rule %s (%s)\n", r.ID, r.Name)
			return nil
		},
	}
	ruleInputFlags(cmd, &in, &metric, &condition, &severity)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("threshold")
	return cmd
}

func newRulesUpdateCmd(a *app) *cobra.Command {
	var in domain.AlertRuleInput
	var metric, condition, severity string
	var enabled bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("alert:write"); err != nil {
				return err
			}
			in.Metric = domain.Metric(metric)
			in.Condition = domain.Condition(condition)
			in.Severity = domain.Severity(severity)
			in.Enabled = enabled
			r, err := a.rules.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated alert rule %s (%s)\n", r.ID, r.Name)
			return nil
		},
	}
	ruleInputFlags(cmd, &in, &metric, &condition, &severity)
	cmd.Flags().BoolVar(&enabled, "enabled", true, "whether the rule is active")
	return cmd
}

func newRulesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("alert:delete"); err != nil {
				return err
			}
			if err := a.rules.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted alert rule %s\n", args[0])
			return nil
		},
	}
}

func newRulesToggleCmd(a *app, verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: capitalizeVerb(verb) + " an alert rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("alert:write"); err != nil {
				return err
			}
			r, err := a.rules.SetEnabled(cmd.Context(), args[0], enabled)
			if err != nil {
				return err
			}
			state := "disabled"
			if r.Enabled {
				state = "enabled"
			}
			fmt.Printf("Alert rule %s is now %s\n", r.ID, state)
			return nil
		},
	}
}

func capitalizeVerb(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func newEventsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alert events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			events, err := a.events.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRULE\tSERVER\tSEVERITY\tSTATUS\tVALUE\tSTARTED")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
					e.ID, e.RuleName, e.ServerID, e.Severity, e.Status, e.Value, formatTime(e.StartedAt))
			}
			return w.Flush()
		},
	}
}

func newEventsAckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ack <id>",
		Short: "Acknowledge an alert event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("alert:write"); err != nil {
				return err
			}
			e, err := a.events.Acknowledge(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Alert event %s acknowledged\n", e.ID)
			return nil
		},
	}
}

func newEventsResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve an alert event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("alert:write"); err != nil {
				return err
			}
			e, err := a.events.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Alert event %s resolved\n", e.ID)
			return nil
		},
	}
}
