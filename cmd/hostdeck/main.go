package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/internal/core/services"
	"hostdeck/internal/guard"
	"hostdeck/internal/infrastructure/api"
	"hostdeck/internal/infrastructure/credstore"
	"hostdeck/internal/infrastructure/mock"
	"hostdeck/pkg/cache"
	"hostdeck/pkg/config"
	"hostdeck/pkg/logger"
)

// app holds everything the commands need, wired once in persistentPreRun.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	store   ports.KeyValueStore
	session *services.SessionStore
	auth    *services.AuthManager
	guard   *guard.Guard

	servers  *services.CachedServerService
	projects *services.ProjectService
	rules    *services.AlertRuleService
	events   *services.AlertEventService
	users    *services.UserService
	prefs    *services.PreferencesManager
}

var (
	flagConfig    string
	flagNoPersist bool
	flagVerbose   bool
)

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "hostdeck",
		Short:         "Server management console",
		Long:          "hostdeck is a terminal console for the server management backend: servers, projects, alert rules and events, users, and live metrics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "configs/config.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&flagNoPersist, "no-persist", false, "keep the session in memory only")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newServersCmd(a),
		newProjectsCmd(a),
		newAlertsCmd(a),
		newUsersCmd(a),
		newPrefsCmd(a),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if flagVerbose {
		level = "debug"
	} else if level == "" || level == "info" {
		// keep command output clean unless asked otherwise
		level = "warn"
	}
	a.logger = logger.NewConsole(level)

	if flagNoPersist || cfg.Storage.Disabled {
		a.store = credstore.NewMemoryStore()
	} else {
		a.store = credstore.NewFileStore(cfg.Storage.Dir, a.logger)
	}

	a.session = services.NewSessionStore(a.store)
	expiry := services.NewTokenExpiry(cfg.Auth.AllowOpaqueTokens)
	policy := domain.DefaultPolicy()

	var (
		authBackend ports.AuthBackend
		apiBackend  ports.APIBackend
	)
	if cfg.API.Mock {
		backend := mock.NewBackend()
		authBackend, apiBackend = backend, backend
	} else {
		client := api.NewClient(cfg.API.BaseURL, cfg.API.PathPrefix, cfg.API.Timeout, func() string {
			t, _ := a.session.Token()
			return t
		}, a.logger)
		authBackend, apiBackend = client, client
	}

	a.auth = services.NewAuthManager(authBackend, a.session, expiry, policy, cfg.API.BaseURL, a.logger)
	perms := services.NewPermissionManager(policy)
	a.guard = guard.New(a.auth, perms, a.logger)

	a.servers = services.NewCachedServerService(
		services.NewServerService(apiBackend, a.logger),
		cache.NewWithFallback(services.ServerListTTL),
	)
	a.projects = services.NewProjectService(apiBackend, a.logger)
	a.rules = services.NewAlertRuleService(apiBackend, a.logger)
	a.events = services.NewAlertEventService(apiBackend, a.logger)
	a.users = services.NewUserService(apiBackend, authBackend, policy, a.logger)
	a.prefs = services.NewPreferencesManager(a.store, a.logger)
	return nil
}

// requireAuth fails the command early when no valid session is held.
func (a *app) requireAuth() error {
	if !a.guard.RequireAuth() {
		return fmt.Errorf("not signed in; run 'hostdeck login' first")
	}
	return nil
}

func (a *app) requirePermission(perm string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if !a.guard.RequirePermission(perm) {
		return fmt.Errorf("your role does not allow this action (%s)", perm)
	}
	return nil
}

func (a *app) requireRole(role domain.Role) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if !a.guard.RequireRole(role) {
		return fmt.Errorf("this command requires the %s role", role)
	}
	return nil
}
