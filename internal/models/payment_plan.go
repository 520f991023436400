package models

import (
	"errors"
	"strings"
	"time"
)

type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanTerm    PlanType = "term"
	PlanAnnual  PlanType = "annual"
)

type PaymentPlan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      PlanType  `json:"type"`
	Amount    int64     `json:"amount"` // minor units
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PaymentPlan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name required")
	}
	switch p.Type {
	case PlanMonthly, PlanTerm, PlanAnnual:
	default:
		return errors.New("unknown plan type")
	}
	if p.Amount < 0 {
		return errors.New("amount must be >= 0")
	}
	if len(p.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	return nil
}
