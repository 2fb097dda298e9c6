package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

func (c *Client) ListServers(ctx context.Context) ([]ports.ServerDTO, error) {
	var out []ports.ServerDTO
	err := c.do(ctx, http.MethodGet, "/servers", nil, &out)
	return out, err
}

func (c *Client) GetServer(ctx context.Context, id string) (*ports.ServerDTO, error) {
	var out ports.ServerDTO
	if err := c.do(ctx, http.MethodGet, "/servers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateServer(ctx context.Context, in ports.ServerDTO) (*ports.ServerDTO, error) {
	var out ports.ServerDTO
	if err := c.do(ctx, http.MethodPost, "/servers", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateServer(ctx context.Context, id string, in ports.ServerDTO) (*ports.ServerDTO, error) {
	var out ports.ServerDTO
	if err := c.do(ctx, http.MethodPut, "/servers/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteServer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/servers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]ports.ProjectDTO, error) {
	var out []ports.ProjectDTO
	err := c.do(ctx, http.MethodGet, "/projects", nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (*ports.ProjectDTO, error) {
	var out ports.ProjectDTO
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, in ports.ProjectDTO) (*ports.ProjectDTO, error) {
	var out ports.ProjectDTO
	if err := c.do(ctx, http.MethodPost, "/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, in ports.ProjectDTO) (*ports.ProjectDTO, error) {
	var out ports.ProjectDTO
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListAlertRules(ctx context.Context) ([]ports.AlertRuleDTO, error) {
	var out []ports.AlertRuleDTO
	err := c.do(ctx, http.MethodGet, "/alert-rules", nil, &out)
	return out, err
}

func (c *Client) CreateAlertRule(ctx context.Context, in ports.AlertRuleDTO) (*ports.AlertRuleDTO, error) {
	var out ports.AlertRuleDTO
	if err := c.do(ctx, http.MethodPost, "/alert-rules", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAlertRule(ctx context.Context, id string, in ports.AlertRuleDTO) (*ports.AlertRuleDTO, error) {
	var out ports.AlertRuleDTO
	if err := c.do(ctx, http.MethodPut, "/alert-rules/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAlertRule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/alert-rules/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SetAlertRuleEnabled(ctx context.Context, id string, enabled bool) (*ports.AlertRuleDTO, error) {
	var out ports.AlertRuleDTO
	path := fmt.Sprintf("/alert-rules/%s/status?enabled=%t", url.PathEscape(id), enabled)
	if err := c.do(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAlertEvents(ctx context.Context) ([]ports.AlertEventDTO, error) {
	var out []ports.AlertEventDTO
	err := c.do(ctx, http.MethodGet, "/alert-events", nil, &out)
	return out, err
}

func (c *Client) AcknowledgeAlertEvent(ctx context.Context, id string) (*ports.AlertEventDTO, error) {
	var out ports.AlertEventDTO
	if err := c.do(ctx, http.MethodPost, "/alert-events/"+url.PathEscape(id)+"/acknowledge", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveAlertEvent(ctx context.Context, id string) (*ports.AlertEventDTO, error) {
	var out ports.AlertEventDTO
	if err := c.do(ctx, http.MethodPost, "/alert-events/"+url.PathEscape(id)+"/resolve", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]ports.UserDTO, error) {
	var out []ports.UserDTO
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (*ports.UserDTO, error) {
	var out ports.UserDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, in ports.UserDTO) (*ports.UserDTO, error) {
	var out ports.UserDTO
	if err := c.do(ctx, http.MethodPost, "/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in ports.UserDTO) (*ports.UserDTO, error) {
	var out ports.UserDTO
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListMetrics(ctx context.Context, serverID string, limit int) ([]domain.MetricSample, error) {
	var out []domain.MetricSample
	path := fmt.Sprintf("/servers/%s/metrics?limit=%d", url.PathEscape(serverID), limit)
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) LatestMetrics(ctx context.Context) ([]domain.MetricSample, error) {
	var out []domain.MetricSample
	err := c.do(ctx, http.MethodGet, "/metrics/latest", nil, &out)
	return out, err
}
