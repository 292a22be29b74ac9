package domain

import "time"

// Уровни событий аудита.
const (
	AuditLevelInfo  = "info"
	AuditLevelWarn  = "warn"
	AuditLevelError = "error"
)

// AuditLog — append-only запись о значимом действии: auth-событие,
// мутация политики, решение по рану. Не обновляется и не удаляется.
type AuditLog struct {
	ID     string  `json:"id"`
	Action string  `json:"action"` // Dotted-имя события, напр. "policy.create"
	Actor  string  `json:"actor"`  // Username оператора или имя агента
	Target *string `json:"target"` // ID затронутой сущности

	// Произвольный структурированный контекст события
	Details   map[string]any `json:"details"`
	Level     string         `json:"level"`
	CreatedAt time.Time      `json:"createdAt"`
}

// InsertAuditLog — запись, которую сервисы кладут в журнал после того,
// как основная операция успешно завершилась.
type InsertAuditLog struct {
	Action  string
	Actor   string
	Target  *string
	Details map[string]any
	Level   string
}

// RunAuditLevel выводит уровень записи аудита из решения рана:
// deny -> warn, остальные -> info.
func RunAuditLevel(d Decision) string {
	if d == DecisionDeny {
		return AuditLevelWarn
	}
	return AuditLevelInfo
}
