package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"hostdeck/internal/core/domain"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage console preferences",
	}
	cmd.AddCommand(
		newPrefsShowCmd(a),
		newPrefsSetCmd(a),
		newPrefsResetCmd(a),
	)
	return cmd
}

func newPrefsShowCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role := domain.RoleViewer
			if u := a.auth.GetUser(); u != nil {
				role = u.Role
			}
			printPrefs(a.prefs.Get(), role)
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			a.prefs.Watch(ctx, 5*time.Second, func(p domain.Preferences) {
				fmt.Println()
				printPrefs(p, role)
			})
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep polling and reprint when another process changes a preference")
	return cmd
}

func printPrefs(p domain.Preferences, role domain.Role) {
	fmt.Printf("font-size:             %s (%s)\n", p.FontSize, p.FontSizePixels())
	fmt.Printf("compact-mode:          %t\n", p.CompactMode)
	fmt.Printf("sidebar-auto-collapse: %t\n", p.SidebarAutoCollapse)
	fmt.Printf("notifications:         %t\n", p.EnableNotifications)
	fmt.Printf("sound:                 %t\n", p.EnableSound)
	fmt.Printf("theme:                 %s (%s)\n", p.ThemeOverride, p.ThemeColor(role))
	fmt.Printf("language:              %s\n", p.Language)
}

func newPrefsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one preference",
		Long: `Set one preference. Keys:
  font-size             small | medium | large
  compact-mode          true | false
  sidebar-auto-collapse true | false
  notifications         true | false
  sound                 true | false
  theme                 auto | blue | purple | green | red | orange
  language              en | zh`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			p := a.prefs.Get()
			key, value := args[0], args[1]

			parseBool := func() (bool, error) {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return false, fmt.Errorf("%s expects true or false", key)
				}
				return b, nil
			}

			switch key {
			case "font-size":
				switch value {
				case "small", "medium", "large":
					p.FontSize = value
				default:
					return fmt.Errorf("font-size must be small, medium or large")
				}
			case "compact-mode":
				b, err := parseBool()
				if err != nil {
					return err
				}
				p.CompactMode = b
			case "sidebar-auto-collapse":
				b, err := parseBool()
				if err != nil {
					return err
				}
				p.SidebarAutoCollapse = b
			case "notifications":
				b, err := parseBool()
				if err != nil {
					return err
				}
				p.EnableNotifications = b
			case "sound":
				b, err := parseBool()
				if err != nil {
					return err
				}
				p.EnableSound = b
			case "theme":
				switch value {
				case "auto", "blue", "purple", "green", "red", "orange":
					p.ThemeOverride = value
				default:
					return fmt.Errorf("theme must be auto, blue, purple, green, red or orange")
				}
			case "language":
				switch value {
				case "en", "zh":
					p.Language = value
				default:
					return fmt.Errorf("language must be en or zh")
				}
			default:
				return fmt.Errorf("unknown preference %q", key)
			}

			a.prefs.Save(p)
			fmt.Printf("Set %s to %s\n", key, value)
			return nil
		},
	}
}

func newPrefsResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default preferences",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.prefs.Reset()
			fmt.Println("Preferences reset to defaults.")
			return nil
		},
	}
}
