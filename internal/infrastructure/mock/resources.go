package mock

import (
	"context"
	"sort"
	"strconv"
	"time"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

func (b *Backend) ListServers(_ context.Context) ([]ports.ServerDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.ServerDTO, 0, len(b.servers))
	for _, s := range b.servers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) GetServer(_ context.Context, id string) (*ports.ServerDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.servers[n]
	if !ok {
		return nil, notFound("server")
	}
	return &s, nil
}

func (b *Backend) CreateServer(_ context.Context, in ports.ServerDTO) (*ports.ServerDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	in.ID = b.id()
	now := time.Now().UTC().Format(time.RFC3339)
	in.CreatedAt = now
	in.UpdatedAt = now
	if in.Status == "" {
		in.Status = "unknown"
	}
	b.servers[in.ID] = in
	return &in, nil
}

func (b *Backend) UpdateServer(_ context.Context, id string, in ports.ServerDTO) (*ports.ServerDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	existing, ok := b.servers[n]
	if !ok {
		return nil, notFound("server")
	}
	if in.ServerName != "" {
		existing.ServerName = in.ServerName
	}
	if in.IPAddress != "" {
		existing.IPAddress = in.IPAddress
	}
	if in.OperatingSystem != "" {
		existing.OperatingSystem = in.OperatingSystem
	}
	if in.CPU != "" {
		existing.CPU = in.CPU
	}
	if in.Memory != "" {
		existing.Memory = in.Memory
	}
	if in.Status != "" {
		existing.Status = in.Status
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	b.servers[n] = existing
	return &existing, nil
}

func (b *Backend) DeleteServer(_ context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.servers[n]; !ok {
		return notFound("server")
	}
	delete(b.servers, n)
	return nil
}

func (b *Backend) ListProjects(_ context.Context) ([]ports.ProjectDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.ProjectDTO, 0, len(b.projects))
	for _, p := range b.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) GetProject(_ context.Context, id string) (*ports.ProjectDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[n]
	if !ok {
		return nil, notFound("project")
	}
	return &p, nil
}

func (b *Backend) CreateProject(_ context.Context, in ports.ProjectDTO) (*ports.ProjectDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	in.ID = b.id()
	now := time.Now().UTC().Format(time.RFC3339)
	in.CreatedAt = now
	in.UpdatedAt = now
	if in.Status == "" {
		in.Status = "PLANNED"
	}
	b.projects[in.ID] = in
	return &in, nil
}

func (b *Backend) UpdateProject(_ context.Context, id string, in ports.ProjectDTO) (*ports.ProjectDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	existing, ok := b.projects[n]
	if !ok {
		return nil, notFound("project")
	}
	if in.ProjectName != "" {
		existing.ProjectName = in.ProjectName
	}
	if in.Status != "" {
		existing.Status = in.Status
	}
	if in.Duration != "" {
		existing.Duration = in.Duration
	}
	if in.ServerIDs != nil {
		existing.ServerIDs = in.ServerIDs
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	b.projects[n] = existing
	return &existing, nil
}

func (b *Backend) DeleteProject(_ context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.projects[n]; !ok {
		return notFound("project")
	}
	delete(b.projects, n)
	return nil
}

func (b *Backend) ListAlertRules(_ context.Context) ([]ports.AlertRuleDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.AlertRuleDTO, 0, len(b.rules))
	for _, r := range b.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RuleID < out[j].RuleID })
	return out, nil
}

func (b *Backend) CreateAlertRule(_ context.Context, in ports.AlertRuleDTO) (*ports.AlertRuleDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	in.RuleID = b.id()
	now := time.Now().UTC().Format(time.RFC3339)
	in.CreatedAt = now
	in.UpdatedAt = now
	b.rules[in.RuleID] = in
	return &in, nil
}

func (b *Backend) UpdateAlertRule(_ context.Context, id string, in ports.AlertRuleDTO) (*ports.AlertRuleDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	existing, ok := b.rules[n]
	if !ok {
		return nil, notFound("alert rule")
	}
	in.RuleID = n
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	b.rules[n] = in
	return &in, nil
}

func (b *Backend) DeleteAlertRule(_ context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.rules[n]; !ok {
		return notFound("alert rule")
	}
	delete(b.rules, n)
	return nil
}

func (b *Backend) SetAlertRuleEnabled(_ context.Context, id string, enabled bool) (*ports.AlertRuleDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	existing, ok := b.rules[n]
	if !ok {
		return nil, notFound("alert rule")
	}
	existing.Enabled = enabled
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	b.rules[n] = existing
	return &existing, nil
}

func (b *Backend) ListAlertEvents(_ context.Context) ([]ports.AlertEventDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.AlertEventDTO, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID < out[j].EventID })
	return out, nil
}

func (b *Backend) AcknowledgeAlertEvent(_ context.Context, id string) (*ports.AlertEventDTO, error) {
	return b.setEventStatus(id, "acknowledged", false)
}

func (b *Backend) ResolveAlertEvent(_ context.Context, id string) (*ports.AlertEventDTO, error) {
	return b.setEventStatus(id, "resolved", true)
}

func (b *Backend) setEventStatus(id, status string, stamped bool) (*ports.AlertEventDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.events[n]
	if !ok {
		return nil, notFound("alert event")
	}
	e.Status = status
	if stamped {
		e.ResolvedAt = time.Now().UTC().Format(time.RFC3339)
	}
	b.events[n] = e
	return &e, nil
}

func (b *Backend) ListUsers(_ context.Context) ([]ports.UserDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.UserDTO, 0, len(b.users))
	for _, u := range b.users {
		u.Password = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) GetUser(_ context.Context, id string) (*ports.UserDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[n]
	if !ok {
		return nil, notFound("user")
	}
	u.Password = ""
	return &u, nil
}

func (b *Backend) CreateUser(ctx context.Context, in ports.UserDTO) (*ports.UserDTO, error) {
	if err := b.SignUp(ctx, in.Username, in.Email, in.Password, in.Role); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == in.Username {
			u.Password = ""
			return &u, nil
		}
	}
	return nil, notFound("user")
}

func (b *Backend) UpdateUser(_ context.Context, id string, in ports.UserDTO) (*ports.UserDTO, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[n]
	if !ok {
		return nil, notFound("user")
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	b.users[n] = u
	u.Password = ""
	return &u, nil
}

func (b *Backend) DeleteUser(_ context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[n]; !ok {
		return notFound("user")
	}
	delete(b.users, n)
	return nil
}

// ListMetrics fabricates a random-walk series ending now, newest first.
func (b *Backend) ListMetrics(_ context.Context, serverID string, limit int) ([]domain.MetricSample, error) {
	if _, err := parseID(serverID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	cpu, mem, disk := 35.0, 50.0, 60.0
	out := make([]domain.MetricSample, 0, limit)
	for i := 0; i < limit; i++ {
		cpu = clamp(cpu+b.rng.Float64()*10-5, 1, 99)
		mem = clamp(mem+b.rng.Float64()*6-3, 5, 99)
		disk = clamp(disk+b.rng.Float64()*2-1, 10, 99)
		out = append(out, domain.MetricSample{
			ID:          strconv.Itoa(i + 1),
			ServerID:    serverID,
			CPUUsage:    cpu,
			MemoryUsage: mem,
			DiskUsage:   disk,
			NetworkIn:   clamp(b.rng.Float64()*120, 0, 1000),
			NetworkOut:  clamp(b.rng.Float64()*80, 0, 1000),
			Temperature: clamp(40+b.rng.Float64()*20, 20, 95),
			LoadAvg:     clamp(b.rng.Float64()*8, 0, 64),
			CollectedAt: now.Add(-time.Duration(i) * 30 * time.Second),
		})
	}
	return out, nil
}

func (b *Backend) LatestMetrics(ctx context.Context) ([]domain.MetricSample, error) {
	servers, err := b.ListServers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MetricSample, 0, len(servers))
	for _, s := range servers {
		samples, err := b.ListMetrics(ctx, strconv.FormatInt(s.ID, 10), 1)
		if err != nil {
			return nil, err
		}
		if len(samples) > 0 {
			out = append(out, samples[0])
		}
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
