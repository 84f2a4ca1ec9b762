package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sex string

const (
	SexMale   Sex = "macho"
	SexFemale Sex = "femea"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Animal is a patient belonging to exactly one client.
type Animal struct {
	Base
	ClientID  int64               `db:"cliente_id" json:"cliente_id"`
	Name      string              `db:"nome" json:"nome"`
	Species   string              `db:"especie" json:"especie"`
	Breed     *string             `db:"raca" json:"raca"`
	Sex       Sex                 `db:"sexo" json:"sexo"`
	BirthDate *time.Time          `db:"data_nascimento" json:"data_nascimento"`
	Weight    decimal.NullDecimal `db:"peso" json:"peso"`
	Color     *string             `db:"cor" json:"cor"`
	Notes     *string             `db:"observacoes" json:"observacoes"`

	Client *Client `db:"-" json:"cliente,omitempty"`
}

type AnimalRequest struct {
	ClientID  int64               `json:"cliente_id" binding:"required,gt=0"`
	Name      string              `json:"nome" binding:"required,max=255"`
	Species   string              `json:"especie" binding:"required,max=100"`
	Breed     *string             `json:"raca" binding:"omitempty,max=100"`
	Sex       Sex                 `json:"sexo" binding:"required,oneof=macho femea"`
	BirthDate *time.Time          `json:"data_nascimento"`
	Weight    decimal.NullDecimal `json:"peso"`
	Color     *string             `json:"cor" binding:"omitempty,max=50"`
	Notes     *string             `json:"observacoes"`
}

func (r *AnimalRequest) Apply(a *Animal) {
	a.ClientID = r.ClientID
	a.Name = r.Name
	a.Species = r.Species
	a.Breed = r.Breed
	a.Sex = r.Sex
	a.BirthDate = r.BirthDate
	a.Weight = r.Weight
	a.Color = r.Color
	a.Notes = r.Notes
}

// AnimalFilters narrows the pet report and list.
type AnimalFilters struct {
	Search  string
	Species string
	Sex     Sex
	Created DateRange
}
