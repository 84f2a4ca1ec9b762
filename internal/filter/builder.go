package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

// Builder accumulates AND-combined SQL predicates with positional ($n)
// arguments.
type Builder struct {
	conds []string
	args  []interface{}
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Clone returns a copy that can be extended without touching b.
func (b *Builder) Clone() *Builder {
	c := &Builder{
		conds: make([]string, len(b.conds)),
		args:  make([]interface{}, len(b.args)),
	}
	copy(c.conds, b.conds)
	copy(c.args, b.args)
	return c
}

func (b *Builder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Eq adds col = v.
func (b *Builder) Eq(col string, v interface{}) *Builder {
	return b.Cmp(col, "=", v)
}

// Cmp adds col <op> v.
func (b *Builder) Cmp(col, op string, v interface{}) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("%s %s %s", col, op, b.arg(v)))
	return b
}

// Raw adds a predicate that takes no arguments.
func (b *Builder) Raw(cond string) *Builder {
	b.conds = append(b.conds, cond)
	return b
}

// Search adds a case-insensitive substring match OR-ed across cols.
// A blank term is a no-op.
func (b *Builder) Search(term string, cols ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return b
	}
	p := b.arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE %s", col, p)
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// Between bounds col by calendar day, both ends inclusive.
func (b *Builder) Between(col string, r model.DateRange) *Builder {
	if r.From != nil {
		b.Cmp(col, ">=", startOfDay(*r.From))
	}
	if r.To != nil {
		b.Cmp(col, "<", startOfDay(*r.To).AddDate(0, 0, 1))
	}
	return b
}

// Where renders " WHERE ..." or an empty string when nothing was added.
func (b *Builder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (b *Builder) Args() []interface{} {
	return b.args
}

func (b *Builder) Len() int {
	return len(b.conds)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// The predicate functions below qualify columns with the aliases cl
// (clientes), a (animals), v (veterinarios), c (consultas) and p (procedures).

func ClientPredicates(f model.ClientFilters) *Builder {
	return NewBuilder().
		Search(f.Search, "cl.nome", "cl.email", "cl.telefone", "cl.cpf").
		Between("cl.created_at", f.Created)
}

func AnimalPredicates(f model.AnimalFilters) *Builder {
	b := NewBuilder().Search(f.Search, "a.nome", "a.especie", "a.raca")
	if f.Species != "" {
		b.Cmp("LOWER(a.especie)", "=", strings.ToLower(f.Species))
	}
	if f.Sex != "" {
		b.Eq("a.sexo", string(f.Sex))
	}
	return b.Between("a.created_at", f.Created)
}

func ProcedurePredicates(f model.ProcedureFilters) *Builder {
	b := NewBuilder().Search(f.Search, "p.nome", "p.descricao", "p.categoria")
	if f.Active != nil {
		b.Eq("p.ativo", *f.Active)
	}
	if f.MinPrice != nil {
		b.Cmp("p.preco", ">=", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.Cmp("p.preco", "<=", *f.MaxPrice)
	}
	return b.Between("p.created_at", f.Created)
}

func VeterinarianPredicates(f model.VeterinarianFilters) *Builder {
	b := NewBuilder().Search(f.Search, "v.nome", "v.email", "v.crmv")
	if f.Specialization != "" {
		b.Cmp("LOWER(v.especialidade)", "=", strings.ToLower(f.Specialization))
	}
	return b.Between("v.created_at", f.Created)
}

// ConsultationPredicates expects consultas c joined with animals a and
// veterinarios v.
func ConsultationPredicates(f model.ConsultationFilters) *Builder {
	b := NewBuilder().Search(f.Search, "c.motivo", "a.nome", "v.nome")
	if f.Status != "" {
		b.Eq("c.status", string(f.Status))
	}
	if f.VeterinarianID > 0 {
		b.Eq("c.veterinario_id", f.VeterinarianID)
	}
	return b.Between("c.data_consulta", f.Scheduled)
}
