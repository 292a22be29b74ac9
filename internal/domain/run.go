package domain

import "time"

// Decision — исход проверки действия агента CLI-рантаймом.
type Decision string

const (
	DecisionAllow    Decision = "allow"
	DecisionDeny     Decision = "deny"
	DecisionEscalate Decision = "escalate"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionAllow, DecisionDeny, DecisionEscalate:
		return true
	}
	return false
}

// PolicyRun — одно зафиксированное событие проверки. Создается через API
// внешним рантаймом, никогда не обновляется и не удаляется.
type PolicyRun struct {
	ID       string   `json:"id"`
	PolicyID *string  `json:"policyId"` // Ран может не ссылаться на политику
	Agent    string   `json:"agent"`
	Command  string   `json:"command"`
	Decision Decision `json:"decision"`
	Reason   *string  `json:"reason"`

	// Длительность проверки в миллисекундах
	Duration  *int      `json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertPolicyRun — тело POST /api/runs.
// policyId не валидируется на существование: принимаем осиротевшие ссылки,
// чтобы шлюз мог репортить раны по уже удаленным политикам.
type InsertPolicyRun struct {
	PolicyID *string  `json:"policyId"`
	Agent    string   `json:"agent"`
	Command  string   `json:"command"`
	Decision Decision `json:"decision"`
	Reason   *string  `json:"reason"`
	Duration *int     `json:"duration"`
}

func (r *InsertPolicyRun) Validate() error {
	if r.Agent == "" || r.Command == "" || !r.Decision.Valid() {
		return NewValidationError("Invalid run data")
	}
	return nil
}
