package account

import "time"

// Account represents a registered user with a plan tier and monthly usage
type Account struct {
	ID                   int64     `json:"id"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"` // Not exposed in JSON
	Plan                 string    `json:"plan"`
	ValidationsThisMonth int       `json:"validations_this_month"`
	LastResetAt          time.Time `json:"last_reset_at"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Plan tiers
const (
	PlanFree = "free"
	PlanPro  = "pro"
)
