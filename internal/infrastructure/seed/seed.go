package seed

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/internal/infrastructure/password"
)

// Repositories is the set of stores the demo data set goes into.
type Repositories struct {
	Users      ports.UserRepository
	Servers    ports.ServerRepository
	Projects   ports.ProjectRepository
	AlertRules ports.AlertRuleRepository
}

// Demo populates the repositories with the demo data set: three users
// (one per role), a handful of servers, projects grouping them, and a
// few alert rules. Existing users are left alone so a Redis-backed
// store survives restarts without duplicate errors.
func Demo(ctx context.Context, repos Repositories, logger *zap.Logger) error {
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)

	users := []struct {
		user     domain.User
		password string
	}{
		{domain.User{ID: "1", Username: "admin", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, CreatedAt: now}, "admin123"},
		{domain.User{ID: "2", Username: "operator", Name: "Operator", Email: "operator@example.com", Role: domain.RoleOperator, CreatedAt: now}, "operator123"},
		{domain.User{ID: "3", Username: "viewer", Name: "Viewer", Email: "viewer@example.com", Role: domain.RoleViewer, CreatedAt: now}, "viewer123"},
	}
	for _, u := range users {
		if _, err := repos.Users.GetByID(ctx, u.user.ID); err == nil {
			continue
		}
		user := u.user
		if err := repos.Users.Create(ctx, &user, password.Hash(u.password)); err != nil {
			if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
				continue
			}
			return err
		}
	}

	servers := []ports.ServerDTO{
		{ServerName: "web-01", IPAddress: "192.168.1.10", Status: "online", OperatingSystem: "Ubuntu 22.04", CPU: "8 cores", Memory: "16 GB"},
		{ServerName: "web-02", IPAddress: "192.168.1.11", Status: "online", OperatingSystem: "Ubuntu 22.04", CPU: "8 cores", Memory: "16 GB"},
		{ServerName: "db-01", IPAddress: "192.168.1.20", Status: "online", OperatingSystem: "Debian 12", CPU: "16 cores", Memory: "64 GB"},
		{ServerName: "cache-01", IPAddress: "192.168.1.30", Status: "online", OperatingSystem: "Alpine 3.19", CPU: "4 cores", Memory: "8 GB"},
		{ServerName: "backup-01", IPAddress: "192.168.1.40", Status: "offline", OperatingSystem: "Debian 12", CPU: "4 cores", Memory: "8 GB"},
	}
	for i := range servers {
		servers[i].LastUpdate = stamp
		servers[i].CreatedAt = stamp
		servers[i].UpdatedAt = stamp
		if err := repos.Servers.Create(ctx, &servers[i]); err != nil {
			return err
		}
	}

	projects := []ports.ProjectDTO{
		{ProjectName: "Storefront", Status: "IN_PROGRESS", ServerIDs: []int64{servers[0].ID, servers[1].ID}, Duration: "6 months"},
		{ProjectName: "Data Platform", Status: "PLANNED", ServerIDs: []int64{servers[2].ID, servers[3].ID}, Duration: "1 year"},
	}
	for i := range projects {
		projects[i].CreatedAt = stamp
		projects[i].UpdatedAt = stamp
		if err := repos.Projects.Create(ctx, &projects[i]); err != nil {
			return err
		}
	}

	rules := []ports.AlertRuleDTO{
		{RuleName: "High CPU usage", Description: "CPU above 90% on any server", TargetMetric: "cpu_usage", Comparator: ">", Threshold: 90, Duration: 5, Severity: "HIGH", Enabled: true},
		{RuleName: "Memory pressure", Description: "Memory above 85%", TargetMetric: "memory_usage", Comparator: ">", Threshold: 85, Duration: 5, Severity: "WARNING", Enabled: true},
		{RuleName: "Disk filling up", Description: "Disk above 90%", TargetMetric: "disk_usage", Comparator: ">", Threshold: 90, Duration: 10, Severity: "CRITICAL", Enabled: true},
		{RuleName: "Overheating", Description: "Temperature above 85°C", TargetMetric: "temperature", Comparator: ">", Threshold: 85, Duration: 2, Severity: "CRITICAL", Enabled: false},
	}
	for i := range rules {
		rules[i].CreatedAt = stamp
		rules[i].UpdatedAt = stamp
		if err := repos.AlertRules.Create(ctx, &rules[i]); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded",
		zap.Int("users", len(users)),
		zap.Int("servers", len(servers)),
		zap.Int("projects", len(projects)),
		zap.Int("alert_rules", len(rules)))
	return nil
}
