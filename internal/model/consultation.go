package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationStatusScheduled ConsultationStatus = "agendada"
	ConsultationStatusCompleted ConsultationStatus = "realizada"
	ConsultationStatusCancelled ConsultationStatus = "cancelada"
)

// ConsultationStatuses lists every status in display order.
var ConsultationStatuses = []ConsultationStatus{
	ConsultationStatusScheduled,
	ConsultationStatusCompleted,
	ConsultationStatusCancelled,
}

var consultationStatusAliases = map[string]ConsultationStatus{
	"agendada":  ConsultationStatusScheduled,
	"scheduled": ConsultationStatusScheduled,
	"realizada": ConsultationStatusCompleted,
	"completed": ConsultationStatusCompleted,
	"cancelada": ConsultationStatusCancelled,
	"cancelled": ConsultationStatusCancelled,
	"canceled":  ConsultationStatusCancelled,
}

// ParseConsultationStatus accepts the stored Portuguese values and their
// English aliases.
func ParseConsultationStatus(s string) (ConsultationStatus, bool) {
	st, ok := consultationStatusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// Label is the display name used by chart series.
func (s ConsultationStatus) Label() string {
	switch s {
	case ConsultationStatusScheduled:
		return "Agendada"
	case ConsultationStatusCompleted:
		return "Realizada"
	case ConsultationStatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// Consultation is an appointment of one animal with one veterinarian.
type Consultation struct {
	Base
	AnimalID       int64               `db:"animal_id" json:"animal_id"`
	VeterinarianID int64               `db:"veterinario_id" json:"veterinario_id"`
	ScheduledAt    time.Time           `db:"data_consulta" json:"data_consulta"`
	Reason         string              `db:"motivo" json:"motivo"`
	Diagnosis      *string             `db:"diagnostico" json:"diagnostico"`
	Treatment      *string             `db:"tratamento" json:"tratamento"`
	Notes          *string             `db:"observacoes" json:"observacoes"`
	Value          decimal.NullDecimal `db:"valor" json:"valor"`
	Status         ConsultationStatus  `db:"status" json:"status"`

	Animal       *Animal                  `db:"-" json:"animal,omitempty"`
	Veterinarian *Veterinarian            `db:"-" json:"veterinario,omitempty"`
	Procedures   []*ConsultationProcedure `db:"-" json:"procedures"`
	Total        decimal.Decimal          `db:"-" json:"valor_total"`
}

// ComputeTotal sums quantity times the snapshotted unit price of every
// attached procedure and stores it in Total.
func (c *Consultation) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Procedures {
		total = total.Add(p.Subtotal())
	}
	c.Total = total
	return total
}

// ConsultationProcedure is one row of the consultation x procedure pivot.
type ConsultationProcedure struct {
	ID             int64           `db:"id" json:"id"`
	ConsultationID int64           `db:"consulta_id" json:"consulta_id"`
	ProcedureID    int64           `db:"procedure_id" json:"procedure_id"`
	Quantity       int             `db:"quantidade" json:"quantidade"`
	UnitPrice      decimal.Decimal `db:"preco_unitario" json:"preco_unitario"`
	Notes          *string         `db:"observacoes" json:"observacoes"`
	ProcedureName  string          `db:"procedure_nome" json:"nome"`
	Category       string          `db:"procedure_categoria" json:"categoria"`
}

func (p *ConsultationProcedure) Subtotal() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

type ConsultationProcedureRequest struct {
	ProcedureID int64            `json:"procedure_id" binding:"required,gt=0"`
	Quantity    int              `json:"quantidade" binding:"omitempty,gte=1"`
	UnitPrice   *decimal.Decimal `json:"preco_unitario"`
	Notes       *string          `json:"observacoes"`
}

type ConsultationRequest struct {
	AnimalID       int64                          `json:"animal_id" binding:"required,gt=0"`
	VeterinarianID int64                          `json:"veterinario_id" binding:"required,gt=0"`
	ScheduledAt    time.Time                      `json:"data_consulta" binding:"required"`
	Reason         string                         `json:"motivo" binding:"required"`
	Diagnosis      *string                        `json:"diagnostico"`
	Treatment      *string                        `json:"tratamento"`
	Notes          *string                        `json:"observacoes"`
	Value          decimal.NullDecimal            `json:"valor"`
	Status         string                         `json:"status"`
	Procedures     []ConsultationProcedureRequest `json:"procedures" binding:"omitempty,dive"`
}

var ErrInvalidStatus = errors.New("invalid consultation status")

// Apply copies the scalar fields onto c. An empty status means scheduled.
func (r *ConsultationRequest) Apply(c *Consultation) error {
	status := ConsultationStatusScheduled
	if r.Status != "" {
		st, ok := ParseConsultationStatus(r.Status)
		if !ok {
			return ErrInvalidStatus
		}
		status = st
	}
	c.AnimalID = r.AnimalID
	c.VeterinarianID = r.VeterinarianID
	c.ScheduledAt = r.ScheduledAt
	c.Reason = r.Reason
	c.Diagnosis = r.Diagnosis
	c.Treatment = r.Treatment
	c.Notes = r.Notes
	c.Value = r.Value
	c.Status = status
	return nil
}

// ConsultationFilters narrows the consultation report and list.
type ConsultationFilters struct {
	Search         string
	Status         ConsultationStatus
	VeterinarianID int64
	Scheduled      DateRange
}
