package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/jwalitptl/vetclinic-api/internal/filter"
	"github.com/jwalitptl/vetclinic-api/internal/model"
	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
)

// Kind names an exportable report.
type Kind string

const (
	KindClients       Kind = "clients"
	KindPets          Kind = "pets"
	KindProcedures    Kind = "procedures"
	KindVeterinarians Kind = "veterinarians"
	KindConsultations Kind = "consultations"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindClients, KindPets, KindProcedures, KindVeterinarians, KindConsultations:
		return k, true
	}
	return "", false
}

// Table is a rendered report list ready to be written out.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

const exportDate = "02/01/2006"

func opt(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Export renders the list behind a report, filtered by the same query
// parameters the JSON report accepts.
func (s *Service) Export(ctx context.Context, p *model.Principal, kind Kind, q url.Values) (t *Table, err error) {
	defer func(start time.Time) { s.track(ctx, p, "export_"+string(kind), start, err) }(time.Now())

	switch kind {
	case KindClients:
		return s.exportClients(ctx, filter.ParseClients(q, s.loc))
	case KindPets:
		return s.exportAnimals(ctx, filter.ParseAnimals(q, s.loc))
	case KindProcedures:
		return s.exportProcedures(ctx, filter.ParseProcedures(q, s.loc))
	case KindVeterinarians:
		return s.exportVeterinarians(ctx, filter.ParseVeterinarians(q, s.loc))
	case KindConsultations:
		return s.exportConsultations(ctx, filter.ParseConsultations(q, s.loc))
	}
	return nil, apperrors.BadRequest(fmt.Sprintf("unknown report %q", kind), nil)
}

func (s *Service) exportClients(ctx context.Context, f model.ClientFilters) (*Table, error) {
	clients, err := s.deps.Clients.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	t := &Table{Header: []string{"ID", "Nome", "Email", "Telefone", "CPF", "Cidade", "Estado", "Animais", "Cadastro"}}
	for _, c := range clients {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			c.Phone,
			c.NationalID,
			c.City,
			c.State,
			strconv.Itoa(len(c.Animals)),
			c.CreatedAt.In(s.loc).Format(exportDate),
		})
	}
	return t, nil
}

func (s *Service) exportAnimals(ctx context.Context, f model.AnimalFilters) (*Table, error) {
	animals, err := s.deps.Animals.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	t := &Table{Header: []string{"ID", "Nome", "Espécie", "Raça", "Sexo", "Tutor", "Cadastro"}}
	for _, a := range animals {
		owner := ""
		if a.Client != nil {
			owner = a.Client.Name
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			a.Species,
			opt(a.Breed),
			string(a.Sex),
			owner,
			a.CreatedAt.In(s.loc).Format(exportDate),
		})
	}
	return t, nil
}

func (s *Service) exportProcedures(ctx context.Context, f model.ProcedureFilters) (*Table, error) {
	procedures, err := s.deps.Procedures.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	t := &Table{Header: []string{"ID", "Nome", "Categoria", "Preço", "Duração (min)", "Ativo", "Usos"}}
	for _, p := range procedures {
		var uses int64
		if p.TimesUsed != nil {
			uses = *p.TimesUsed
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			p.Price.StringFixed(2),
			strconv.Itoa(p.Duration),
			strconv.FormatBool(p.Active),
			strconv.FormatInt(uses, 10),
		})
	}
	return t, nil
}

func (s *Service) exportVeterinarians(ctx context.Context, f model.VeterinarianFilters) (*Table, error) {
	vets, err := s.deps.Veterinarians.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}
	t := &Table{Header: []string{"ID", "Nome", "Email", "CRMV", "Especialidade", "Consultas"}}
	for _, v := range vets {
		var count int64
		if v.ConsultationCount != nil {
			count = *v.ConsultationCount
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(v.ID, 10),
			v.Name,
			v.Email,
			v.License,
			opt(v.Specialization),
			strconv.FormatInt(count, 10),
		})
	}
	return t, nil
}

func (s *Service) exportConsultations(ctx context.Context, f model.ConsultationFilters) (*Table, error) {
	consultations, err := s.deps.Consultations.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	t := &Table{Header: []string{"ID", "Data", "Animal", "Tutor", "Veterinário", "Motivo", "Status", "Valor Total"}}
	for _, c := range consultations {
		var animal, owner, vet string
		if c.Animal != nil {
			animal = c.Animal.Name
			if c.Animal.Client != nil {
				owner = c.Animal.Client.Name
			}
		}
		if c.Veterinarian != nil {
			vet = c.Veterinarian.Name
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.ScheduledAt.In(s.loc).Format("02/01/2006 15:04"),
			animal,
			owner,
			vet,
			c.Reason,
			c.Status.Label(),
			c.Total.StringFixed(2),
		})
	}
	return t, nil
}
