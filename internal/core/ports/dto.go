package ports

// Wire DTOs for the management backend. Field names follow the backend's
// JSON vocabulary; the resource services map them to domain types.

type ServerDTO struct {
	ID              int64  `json:"id,omitempty"`
	ServerName      string `json:"serverName"`
	IPAddress       string `json:"ipAddress"`
	Status          string `json:"status,omitempty"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
	CPU             string `json:"cpu,omitempty"`
	Memory          string `json:"memory,omitempty"`
	LastUpdate      string `json:"lastUpdate,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

type ServerSummaryDTO struct {
	ID         int64  `json:"id"`
	ServerName string `json:"serverName"`
	IPAddress  string `json:"ipAddress"`
	Status     string `json:"status"`
}

type ProjectDTO struct {
	ID          int64              `json:"id,omitempty"`
	ProjectName string             `json:"projectName"`
	Status      string             `json:"status,omitempty"`
	Servers     []ServerSummaryDTO `json:"servers,omitempty"`
	ServerIDs   []int64            `json:"serverIds,omitempty"`
	Duration    string             `json:"duration,omitempty"`
	CreatedAt   string             `json:"createdAt,omitempty"`
	UpdatedAt   string             `json:"updatedAt,omitempty"`
}

type AlertRuleDTO struct {
	RuleID       int64   `json:"ruleId,omitempty"`
	RuleName     string  `json:"ruleName"`
	Description  string  `json:"description,omitempty"`
	TargetMetric string  `json:"targetMetric"`
	Comparator   string  `json:"comparator"`
	Threshold    float64 `json:"threshold"`
	Duration     int     `json:"duration"`
	Severity     string  `json:"severity"`
	Enabled      bool    `json:"enabled"`
	ScopeLevel   string  `json:"scopeLevel,omitempty"`
	ProjectID    int64   `json:"projectId,omitempty"`
	TargetFilter string  `json:"targetFilter,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

type AlertEventDTO struct {
	EventID    int64   `json:"eventId"`
	RuleID     int64   `json:"ruleId"`
	RuleName   string  `json:"ruleName"`
	ServerID   int64   `json:"serverId"`
	Severity   string  `json:"severity"`
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Value      float64 `json:"value"`
	StartedAt  string  `json:"startedAt"`
	ResolvedAt string  `json:"resolvedAt,omitempty"`
}

type UserDTO struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
