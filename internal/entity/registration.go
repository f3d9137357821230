package entity

import (
	"time"
)

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
	RegistrationStatusAttended  RegistrationStatus = "attended"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Registration links one user to one event. At most one row may exist per
// (user_id, event_id) pair, enforced by a unique index.
type Registration struct {
	ID                  int64              `json:"id" db:"id"`
	EventID             int64              `json:"event_id" db:"event_id"`
	UserID              int64              `json:"user_id" db:"user_id"`
	Status              RegistrationStatus `json:"status" db:"status"`
	PaymentStatus       PaymentStatus      `json:"payment_status" db:"payment_status"`
	PaymentAmount       float64            `json:"payment_amount" db:"payment_amount"`
	SpecialRequirements string             `json:"special_requirements,omitempty" db:"special_requirements"`
	RegistrationDate    time.Time          `json:"registration_date" db:"registration_date"`
	CheckInTime         *time.Time         `json:"check_in_time,omitempty" db:"check_in_time"`
	CheckOutTime        *time.Time         `json:"check_out_time,omitempty" db:"check_out_time"`
	CreatedAt           time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" db:"updated_at"`
}

// Active reports whether the registration counts toward event capacity.
func (r *Registration) Active() bool {
	return r.Status == RegistrationStatusPending || r.Status == RegistrationStatusConfirmed
}
