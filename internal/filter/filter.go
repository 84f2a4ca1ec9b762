// Package filter turns report query strings into typed filters and typed
// filters into SQL predicates. Values that fail to parse are dropped, never
// reported as errors.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"02/01/2006",
}

func text(q url.Values, key string) string {
	return strings.TrimSpace(q.Get(key))
}

// Date parses key as a calendar date in loc. Missing or malformed values
// yield nil.
func Date(q url.Values, key string, loc *time.Location) *time.Time {
	v := text(q, key)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return &t
		}
	}
	return nil
}

func Bool(q url.Values, key string) *bool {
	v := strings.ToLower(text(q, key))
	switch v {
	case "sim", "yes":
		v = "true"
	case "nao", "não", "no":
		v = "false"
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func Decimal(q url.Values, key string) *decimal.Decimal {
	v := strings.Replace(text(q, key), ",", ".", 1)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}

func ID(q url.Values, key string) int64 {
	id, err := strconv.ParseInt(text(q, key), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func created(q url.Values, loc *time.Location) model.DateRange {
	return model.DateRange{
		From: Date(q, "created_from", loc),
		To:   Date(q, "created_to", loc),
	}
}

func ParseClients(q url.Values, loc *time.Location) model.ClientFilters {
	return model.ClientFilters{
		Search:  text(q, "search"),
		Created: created(q, loc),
	}
}

func ParseAnimals(q url.Values, loc *time.Location) model.AnimalFilters {
	f := model.AnimalFilters{
		Search:  text(q, "search"),
		Species: text(q, "especie"),
		Created: created(q, loc),
	}
	if sex := model.Sex(strings.ToLower(text(q, "sexo"))); sex.Valid() {
		f.Sex = sex
	}
	return f
}

func ParseProcedures(q url.Values, loc *time.Location) model.ProcedureFilters {
	return model.ProcedureFilters{
		Search:   text(q, "search"),
		Active:   Bool(q, "ativo"),
		MinPrice: Decimal(q, "preco_min"),
		MaxPrice: Decimal(q, "preco_max"),
		Created:  created(q, loc),
	}
}

func ParseVeterinarians(q url.Values, loc *time.Location) model.VeterinarianFilters {
	return model.VeterinarianFilters{
		Search:         text(q, "search"),
		Specialization: text(q, "especialidade"),
		Created:        created(q, loc),
	}
}

func ParseConsultations(q url.Values, loc *time.Location) model.ConsultationFilters {
	f := model.ConsultationFilters{
		Search:         text(q, "search"),
		VeterinarianID: ID(q, "veterinario_id"),
		Scheduled: model.DateRange{
			From: Date(q, "data_from", loc),
			To:   Date(q, "data_to", loc),
		},
	}
	if st, ok := model.ParseConsultationStatus(q.Get("status")); ok {
		f.Status = st
	}
	return f
}
