package memory

import (
	"context"
	"sort"
	"sync"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type MemoryAlertRuleRepository struct {
	mu     sync.RWMutex
	rules  map[int64]ports.AlertRuleDTO
	nextID int64
}

func NewMemoryAlertRuleRepository() *MemoryAlertRuleRepository {
	return &MemoryAlertRuleRepository{rules: map[int64]ports.AlertRuleDTO{}}
}

func (r *MemoryAlertRuleRepository) Create(_ context.Context, dto *ports.AlertRuleDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dto.RuleID == 0 {
		r.nextID++
		dto.RuleID = r.nextID
	} else if dto.RuleID > r.nextID {
		r.nextID = dto.RuleID
	}
	r.rules[dto.RuleID] = *dto
	return nil
}

func (r *MemoryAlertRuleRepository) GetByID(_ context.Context, id int64) (*ports.AlertRuleDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dto, ok := r.rules[id]
	if !ok {
		return nil, domain.ErrAlertRuleNotFound
	}
	return &dto, nil
}

func (r *MemoryAlertRuleRepository) List(_ context.Context) ([]ports.AlertRuleDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(ports.AlertRuleDTO) bool { return true }), nil
}

func (r *MemoryAlertRuleRepository) ListEnabled(_ context.Context) ([]ports.AlertRuleDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(dto ports.AlertRuleDTO) bool { return dto.Enabled }), nil
}

func (r *MemoryAlertRuleRepository) listLocked(keep func(ports.AlertRuleDTO) bool) []ports.AlertRuleDTO {
	out := make([]ports.AlertRuleDTO, 0, len(r.rules))
	for _, dto := range r.rules {
		if keep(dto) {
			out = append(out, dto)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RuleID < out[j].RuleID })
	return out
}

func (r *MemoryAlertRuleRepository) Update(_ context.Context, dto *ports.AlertRuleDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[dto.RuleID]; !ok {
		return domain.ErrAlertRuleNotFound
	}
	r.rules[dto.RuleID] = *dto
	return nil
}

func (r *MemoryAlertRuleRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[id]; !ok {
		return domain.ErrAlertRuleNotFound
	}
	delete(r.rules, id)
	return nil
}

type MemoryAlertEventRepository struct {
	mu     sync.RWMutex
	events map[int64]ports.AlertEventDTO
	nextID int64
}

func NewMemoryAlertEventRepository() *MemoryAlertEventRepository {
	return &MemoryAlertEventRepository{events: map[int64]ports.AlertEventDTO{}}
}

func (r *MemoryAlertEventRepository) Create(_ context.Context, dto *ports.AlertEventDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dto.EventID == 0 {
		r.nextID++
		dto.EventID = r.nextID
	} else if dto.EventID > r.nextID {
		r.nextID = dto.EventID
	}
	r.events[dto.EventID] = *dto
	return nil
}

func (r *MemoryAlertEventRepository) GetByID(_ context.Context, id int64) (*ports.AlertEventDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dto, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &dto, nil
}

func (r *MemoryAlertEventRepository) List(_ context.Context) ([]ports.AlertEventDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.AlertEventDTO, 0, len(r.events))
	for _, dto := range r.events {
		out = append(out, dto)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventID > out[j].EventID })
	return out, nil
}

// FindFiring returns the open event for a rule/server pair, if any. The
// evaluator uses it to avoid duplicate events while a condition holds.
func (r *MemoryAlertEventRepository) FindFiring(_ context.Context, ruleID, serverID int64) (*ports.AlertEventDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, dto := range r.events {
		if dto.RuleID == ruleID && dto.ServerID == serverID && dto.Status == "firing" {
			d := dto
			return &d, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *MemoryAlertEventRepository) Update(_ context.Context, dto *ports.AlertEventDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[dto.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	r.events[dto.EventID] = *dto
	return nil
}

var _ ports.AlertRuleRepository = (*MemoryAlertRuleRepository)(nil)
var _ ports.AlertEventRepository = (*MemoryAlertEventRepository)(nil)
