package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"hostdeck/internal/core/domain"
)

func newServersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Manage servers",
	}
	cmd.AddCommand(
		newServersListCmd(a),
		newServersGetCmd(a),
		newServersCreateCmd(a),
		newServersUpdateCmd(a),
		newServersDeleteCmd(a),
		newServersMetricsCmd(a),
		newServersOverviewCmd(a),
	)
	return cmd
}

func newServersListCmd(a *app) *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			var (
				devices []domain.Device
				err     error
			)
			if fresh {
				devices, err = a.servers.ListFresh(cmd.Context())
			} else {
				devices, err = a.servers.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tHOSTNAME\tIP\tSTATUS\tOS\tLAST UPDATE")
			for _, d := range devices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.ID, d.Hostname, d.IPAddress, d.Status, d.OS, formatTime(d.LastUpdate))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "bypass the list cache")
	return cmd
}

func newServersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			d, err := a.servers.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ID:          %s\n", d.ID)
			fmt.Printf("Hostname:    %s\n", d.Hostname)
			fmt.Printf("IP address:  %s\n", d.IPAddress)
			fmt.Printf("Status:      %s\n", d.Status)
			fmt.Printf("OS:          %s\n", d.OS)
			fmt.Printf("CPU:         %s\n", d.CPU)
			fmt.Printf("Memory:      %s\n", d.Memory)
			fmt.Printf("Last update: %s\n", formatTime(d.LastUpdate))

			gauges, err := a.servers.LatestMetrics(cmd.Context(), d.ID)
			if err != nil || len(gauges) == 0 {
				return nil
			}
			fmt.Println()
			for _, g := range gauges {
				fmt.Printf("%-14s %8.1f %s\n", g.MetricType+":", g.Value, g.Unit)
			}
			return nil
		},
	}
}

func newServersOverviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the newest sample for every server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			devices, err := a.servers.List(cmd.Context())
			if err != nil {
				return err
			}
			samples, err := a.servers.Overview(cmd.Context())
			if err != nil {
				return err
			}
			byServer := make(map[string]domain.MetricSample, len(samples))
			for _, s := range samples {
				byServer[s.ServerID] = s
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HOSTNAME\tSTATUS\tCPU%\tMEM%\tDISK%\tTEMP\tCOLLECTED")
			for _, d := range devices {
				s, ok := byServer[d.ID]
				if !ok {
					fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t-\t-\n", d.Hostname, d.Status)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
					d.Hostname, d.Status, s.CPUUsage, s.MemoryUsage, s.DiskUsage, s.Temperature,
					formatTime(s.CollectedAt))
			}
			return w.Flush()
		},
	}
}

func newServersCreateCmd(a *app) *cobra.Command {
	var in domain.DeviceInput
	var status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requirePermission("device:write"); err != nil {
				return err
			}
			in.Status = domain.ParseDeviceStatus(status)
			d, err := a.servers.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created server %s (%s)\n", d.ID, d.Hostname)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Hostname, "name", "", "server name")
	cmd.Flags().StringVar(&in.IPAddress, "ip", "", "IP address")
	cmd.Flags().StringVar(&in.OS, "os", "", "operating system")
	cmd.Flags().StringVar(&in.CPU, "cpu", "", "CPU description")
	cmd.Flags().StringVar(&in.Memory, "memory", "", "memory description")
	cmd.Flags().StringVar(&status, "status", "online", "initial status")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("ip")
	return cmd
}

func newServersUpdateCmd(a *app) *cobra.Command {
	var in domain.DeviceInput
	var status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("device:write"); err != nil {
				return err
			}
			if status != "" {
				in.Status = domain.ParseDeviceStatus(status)
			}
			d, err := a.servers.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated server %s (%s)\n", d.ID, d.Hostname)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Hostname, "name", "", "server name")
	cmd.Flags().StringVar(&in.IPAddress, "ip", "", "IP address")
	cmd.Flags().StringVar(&in.OS, "os", "", "operating system")
	cmd.Flags().StringVar(&in.CPU, "cpu", "", "CPU description")
	cmd.Flags().StringVar(&in.Memory, "memory", "", "memory description")
	cmd.Flags().StringVar(&status, "status", "", "status")
	return cmd
}

func newServersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requirePermission("device:delete"); err != nil {
				return err
			}
			if err := a.servers.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted server %s\n", args[0])
			return nil
		},
	}
}

func newServersMetricsCmd(a *app) *cobra.Command {
	var limit int
	var follow bool
	cmd := &cobra.Command{
		Use:   "metrics <id>",
		Short: "Show server metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}
			if follow {
				return followMetrics(cmd.Context(), a, args[0])
			}

			samples, err := a.servers.Metrics(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			printSamplesHeader()
			for i := len(samples) - 1; i >= 0; i-- {
				printSample(samples[i])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of samples")
	cmd.Flags().BoolVar(&follow, "follow", false, "stream live samples over websocket")
	return cmd
}

// followMetrics subscribes to the demo server's websocket feed and prints
// samples for one server until interrupted.
func followMetrics(ctx context.Context, a *app, serverID string) error {
	wsURL, err := feedURL(a.cfg.API.BaseURL)
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to metrics feed at %s: %w", wsURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	printSamplesHeader()
	for {
		var batch []domain.MetricSample
		if err := conn.ReadJSON(&batch); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("metrics feed closed: %w", err)
		}
		for _, s := range batch {
			if s.ServerID == serverID {
				printSample(s)
			}
		}
	}
}

func feedURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/metrics"
	return u.String(), nil
}

func printSamplesHeader() {
	fmt.Printf("%-20s %7s %7s %7s %9s %9s %6s %6s\n",
		"TIME", "CPU%", "MEM%", "DISK%", "NET IN", "NET OUT", "TEMP", "LOAD")
}

func printSample(s domain.MetricSample) {
	fmt.Printf("%-20s %7.1f %7.1f %7.1f %9.1f %9.1f %6.1f %6.2f\n",
		s.CollectedAt.Local().Format("2006-01-02 15:04:05"),
		s.CPUUsage, s.MemoryUsage, s.DiskUsage, s.NetworkIn, s.NetworkOut, s.Temperature, s.LoadAvg)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
