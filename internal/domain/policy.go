package domain

import (
	"encoding/json"
	"time"
)

// Enforcement определяет, как CLI-рантайм применяет политику.
// Сама консоль режимы не интерпретирует — это контракт для внешнего шлюза.
type Enforcement string

const (
	EnforcementStrict   Enforcement = "strict"   // Блокировать нарушение
	EnforcementWarn     Enforcement = "warn"     // Только записать в лог
	EnforcementEscalate Enforcement = "escalate" // Требовать ручного подтверждения
)

func (e Enforcement) Valid() bool {
	switch e {
	case EnforcementStrict, EnforcementWarn, EnforcementEscalate:
		return true
	}
	return false
}

// Policy — именованный набор правил безопасности для CLI-рантайма.
type Policy struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Enforcement Enforcement `json:"enforcement"`
	Enabled     bool        `json:"enabled"`

	// Упорядоченный список правил. Структуру правил консоль не разбирает,
	// храним как jsonb и отдаем как есть.
	Rules json.RawMessage `json:"rules"`

	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertPolicy — тело POST /api/policies.
type InsertPolicy struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Rules       json.RawMessage `json:"rules"`
	Enforcement Enforcement     `json:"enforcement"`
	Enabled     *bool           `json:"enabled"`
}

// Validate проверяет обязательные поля и проставляет дефолты
// (enforcement=strict, enabled=true, rules=[]).
func (p *InsertPolicy) Validate() error {
	if p.Name == "" {
		return NewValidationError("Invalid policy data")
	}
	if p.Enforcement == "" {
		p.Enforcement = EnforcementStrict
	}
	if !p.Enforcement.Valid() {
		return NewValidationError("Invalid policy data")
	}
	if p.Rules == nil {
		p.Rules = json.RawMessage("[]")
	}
	if p.Enabled == nil {
		enabled := true
		p.Enabled = &enabled
	}
	return nil
}

// UpdatePolicy — тело PATCH /api/policies/{id}. Любое подмножество полей,
// nil-поля не трогаем (чаще всего прилетает только enabled).
type UpdatePolicy struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Rules       json.RawMessage `json:"rules"`
	Enforcement *Enforcement    `json:"enforcement"`
	Enabled     *bool           `json:"enabled"`
}

func (p *UpdatePolicy) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return NewValidationError("Invalid policy data")
	}
	if p.Enforcement != nil && !p.Enforcement.Valid() {
		return NewValidationError("Invalid policy data")
	}
	return nil
}

// Empty сообщает, есть ли в патче хоть одно поле.
func (p *UpdatePolicy) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Rules == nil &&
		p.Enforcement == nil && p.Enabled == nil
}
