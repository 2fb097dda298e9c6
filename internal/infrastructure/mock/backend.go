package mock

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hostdeck/internal/core/ports"
	apperrors "hostdeck/pkg/errors"
)

// Backend is the offline stand-in for the management API. Any non-empty
// credentials sign in as an admin; resources live in seeded in-memory
// tables. It exists so the console works end to end with no server.
type Backend struct {
	mu       sync.Mutex
	nextID   int64
	servers  map[int64]ports.ServerDTO
	projects map[int64]ports.ProjectDTO
	rules    map[int64]ports.AlertRuleDTO
	events   map[int64]ports.AlertEventDTO
	users    map[int64]ports.UserDTO
	rng      *rand.Rand
}

func NewBackend() *Backend {
	b := &Backend{
		nextID:   100,
		servers:  map[int64]ports.ServerDTO{},
		projects: map[int64]ports.ProjectDTO{},
		rules:    map[int64]ports.AlertRuleDTO{},
		events:   map[int64]ports.AlertEventDTO{},
		users:    map[int64]ports.UserDTO{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	b.seed()
	return b
}

func (b *Backend) seed() {
	now := time.Now().UTC().Format(time.RFC3339)

	b.users[1] = ports.UserDTO{ID: 1, Username: "admin", Email: "admin@example.com", Role: "admin", CreatedAt: now}
	b.users[2] = ports.UserDTO{ID: 2, Username: "operator", Email: "operator@example.com", Role: "operation", CreatedAt: now}
	b.users[3] = ports.UserDTO{ID: 3, Username: "viewer", Email: "viewer@example.com", Role: "manager", CreatedAt: now}

	b.servers[1] = ports.ServerDTO{ID: 1, ServerName: "web-01", IPAddress: "192.168.1.10", Status: "online", OperatingSystem: "Ubuntu 22.04", CPU: "8 cores", Memory: "16GB", CreatedAt: now, UpdatedAt: now}
	b.servers[2] = ports.ServerDTO{ID: 2, ServerName: "db-01", IPAddress: "192.168.1.20", Status: "online", OperatingSystem: "Debian 12", CPU: "16 cores", Memory: "64GB", CreatedAt: now, UpdatedAt: now}
	b.servers[3] = ports.ServerDTO{ID: 3, ServerName: "cache-01", IPAddress: "192.168.1.30", Status: "maintenance", OperatingSystem: "Alpine 3.19", CPU: "4 cores", Memory: "8GB", CreatedAt: now, UpdatedAt: now}

	b.projects[1] = ports.ProjectDTO{ID: 1, ProjectName: "Storefront", Status: "ACTIVE", Servers: []ports.ServerSummaryDTO{{ID: 1, ServerName: "web-01", IPAddress: "192.168.1.10", Status: "online"}}, Duration: "6 months", CreatedAt: now, UpdatedAt: now}
	b.projects[2] = ports.ProjectDTO{ID: 2, ProjectName: "Data Platform", Status: "PLANNED", Duration: "1 year", CreatedAt: now, UpdatedAt: now}

	b.rules[1] = ports.AlertRuleDTO{RuleID: 1, RuleName: "High CPU", TargetMetric: "cpu_usage", Comparator: ">", Threshold: 90, Duration: 5, Severity: "HIGH", Enabled: true, CreatedAt: now, UpdatedAt: now}
	b.rules[2] = ports.AlertRuleDTO{RuleID: 2, RuleName: "Low disk headroom", TargetMetric: "disk_usage", Comparator: ">=", Threshold: 85, Duration: 10, Severity: "WARNING", Enabled: true, CreatedAt: now, UpdatedAt: now}

	b.events[1] = ports.AlertEventDTO{EventID: 1, RuleID: 1, RuleName: "High CPU", ServerID: 2, Severity: "HIGH", Status: "firing", Message: "cpu_usage 93.4 > 90", Value: 93.4, StartedAt: now}
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

// SignIn accepts any non-empty credentials. Known seeded usernames keep
// their seeded role; everyone else is an admin, the way the original demo
// behaved.
func (b *Backend) SignIn(_ context.Context, usernameOrEmail, password string) (*ports.SignInResult, error) {
	if usernameOrEmail == "" || password == "" {
		return nil, apperrors.NewUnauthorizedError("Invalid username/email or password")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := int64(1)
	email := usernameOrEmail + "@example.com"
	role := "ROLE_ADMIN"
	for _, u := range b.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			id = u.ID
			email = u.Email
			switch u.Role {
			case "admin":
				role = "ROLE_ADMIN"
			case "operation", "operator":
				role = "ROLE_OPERATOR"
			default:
				role = "ROLE_USER"
			}
			break
		}
	}

	token, err := b.mockToken(usernameOrEmail, role)
	if err != nil {
		return nil, apperrors.NewInternalError("signing demo token")
	}

	return &ports.SignInResult{
		Token:    token,
		Type:     "Bearer",
		ID:       strconv.FormatInt(id, 10),
		Username: usernameOrEmail,
		Email:    email,
		Roles:    []string{role},
	}, nil
}

func (b *Backend) SignUp(_ context.Context, username, email, password, role string) error {
	if username == "" || email == "" || password == "" {
		return apperrors.NewInvalidInputError("username, email and password are required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Username == username {
			return apperrors.NewInvalidInputError("Username is already taken")
		}
		if u.Email == email {
			return apperrors.NewInvalidInputError("Email is already in use")
		}
	}

	id := b.id()
	b.users[id] = ports.UserDTO{
		ID:        id,
		Username:  username,
		Email:     email,
		Role:      storedRole(role),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return nil
}

// storedRole folds a requested role onto the backend's own spellings. Empty
// or unknown requests land on the default viewer tier, never an error.
func storedRole(role string) string {
	switch role {
	case "admin":
		return "admin"
	case "operator", "operation":
		return "operation"
	default:
		return "manager"
	}
}

// mockToken signs a real HS256 token with a throwaway key so the expiry
// evaluator sees a proper exp claim.
func (b *Backend) mockToken(username, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("hostdeck-demo"))
}

func notFound(resource string) error {
	return apperrors.NewNotFoundError(resource)
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("invalid id %q", id))
	}
	return n, nil
}
