package model

import (
	"github.com/shopspring/decimal"
)

// Procedure is a billable catalog item.
type Procedure struct {
	Base
	Name        string          `db:"nome" json:"nome"`
	Description *string         `db:"descricao" json:"descricao"`
	Price       decimal.Decimal `db:"preco" json:"preco"`
	Duration    int             `db:"duracao_minutos" json:"duracao_minutos"`
	Active      bool            `db:"ativo" json:"ativo"`
	Category    string          `db:"categoria" json:"categoria"`
	Notes       *string         `db:"observacoes" json:"observacoes"`

	TimesUsed *int64 `db:"total_usos" json:"total_usos,omitempty"`
}

type ProcedureRequest struct {
	Name        string          `json:"nome" binding:"required,max=255"`
	Description *string         `json:"descricao"`
	Price       decimal.Decimal `json:"preco" binding:"required"`
	Duration    int             `json:"duracao_minutos" binding:"required,gte=1"`
	Active      *bool           `json:"ativo"`
	Category    string          `json:"categoria" binding:"required,max=50"`
	Notes       *string         `json:"observacoes"`
}

func (r *ProcedureRequest) Apply(p *Procedure) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.Duration = r.Duration
	p.Active = true
	if r.Active != nil {
		p.Active = *r.Active
	}
	p.Category = r.Category
	p.Notes = r.Notes
}

// ProcedureFilters narrows the procedure report and list.
type ProcedureFilters struct {
	Search   string
	Active   *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Created  DateRange
}
