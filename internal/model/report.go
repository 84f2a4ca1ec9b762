package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthCount is one bucket of a by-month series.
type MonthCount struct {
	Month string  `json:"mes"`
	Total float64 `json:"total"`
}

// NameValue is one slice of a category distribution.
type NameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// NameTotal is a ranked entry such as the most used procedure.
type NameTotal struct {
	Name  string `json:"nome"`
	Total int64  `json:"total"`
}

type SpecializationCount struct {
	Specialization string `json:"especialidade"`
	Total          int64  `json:"total"`
}

type DailyPoint struct {
	Date          string  `json:"data"`
	Consultations int64   `json:"consultas"`
	Revenue       float64 `json:"receita"`
}

// LabelCount is a raw grouped row returned by the store.
type LabelCount struct {
	Label string `db:"label"`
	Total int64  `db:"total"`
}

// TopEntry is a raw top-N row returned by the store.
type TopEntry struct {
	ID    int64  `db:"id"`
	Name  string `db:"nome"`
	Total int64  `db:"total"`
}

// PeriodCount is a raw time bucket returned by the store.
type PeriodCount struct {
	Period time.Time `db:"period"`
	Total  int64     `db:"total"`
}

// PeriodAmount is a raw money bucket returned by the store.
type PeriodAmount struct {
	Period time.Time       `db:"period"`
	Total  decimal.Decimal `db:"total"`
}

type ClientStats struct {
	Total           int64        `json:"total_clientes"`
	WithAnimals     int64        `json:"clientes_com_animais"`
	AnimalsPerOwner float64      `json:"media_animais_por_cliente"`
	ByMonth         []MonthCount `json:"clientes_por_mes"`
}

type ClientReport struct {
	Clients []*Client   `json:"clientes"`
	Stats   ClientStats `json:"stats"`
}

type AnimalStats struct {
	Total        int64        `json:"total_animals"`
	Species      int64        `json:"especies_diferentes"`
	Males        int64        `json:"machos"`
	Females      int64        `json:"femeas"`
	SpeciesShare []NameValue  `json:"distribuicao_especies"`
	ByMonth      []MonthCount `json:"animais_por_mes"`
}

type AnimalReport struct {
	Animals []*Animal   `json:"animals"`
	Stats   AnimalStats `json:"stats"`
}

type ProcedureStats struct {
	Total        int64      `json:"total_procedures"`
	Active       int64      `json:"procedures_ativos"`
	AveragePrice float64    `json:"preco_medio"`
	MostUsed     *NameTotal `json:"procedure_mais_usado"`
	Revenue      float64    `json:"receita_total_procedures"`
}

type ProcedureReport struct {
	Procedures []*Procedure   `json:"procedures"`
	Stats      ProcedureStats `json:"stats"`
}

type VeterinarianStats struct {
	Total            int64                 `json:"total_veterinarios"`
	Specializations  []SpecializationCount `json:"especialidades"`
	MostActive       *NameTotal            `json:"veterinario_mais_ativo"`
	ConsultationsAvg float64               `json:"media_consultas_por_vet"`
}

type VeterinarianReport struct {
	Veterinarians []*Veterinarian   `json:"veterinarios"`
	Stats         VeterinarianStats `json:"stats"`
}

type ConsultationStats struct {
	Total          int64        `json:"total_consultas"`
	Completed      int64        `json:"consultas_concluidas"`
	Revenue        float64      `json:"receita_total"`
	AverageTicket  float64      `json:"ticket_medio"`
	StatusShare    []NameValue  `json:"distribuicao_status"`
	ByVeterinarian []NameTotal  `json:"consultas_por_veterinario"`
	DailyEvolution []DailyPoint `json:"evolucao_temporal"`
}

type ConsultationReport struct {
	Consultations []*Consultation   `json:"consultas"`
	Stats         ConsultationStats `json:"stats"`
}

type ChartsReport struct {
	ConsultationsByMonth []MonthCount `json:"consultas_por_mes"`
	RevenueByMonth       []MonthCount `json:"receita_por_mes"`
	AnimalsBySpecies     []NameValue  `json:"animais_por_especie"`
}

type Dashboard struct {
	TotalClients           int64   `json:"total_clientes"`
	TotalAnimals           int64   `json:"total_animais"`
	TotalVeterinarians     int64   `json:"total_veterinarios"`
	TotalConsultations     int64   `json:"total_consultas"`
	TotalProcedures        int64   `json:"total_procedures"`
	ConsultationsThisMonth int64   `json:"consultas_mes_atual"`
	RevenueThisMonth       float64 `json:"receita_mes_atual"`
	PendingConsultations   int64   `json:"consultas_pendentes"`
}

// Raw aggregates as read from the store. Report assemblers turn them into
// the payloads above.

type ClientAggregates struct {
	Total       int64
	WithAnimals int64
	Animals     int64
	ByMonth     []PeriodCount
}

type AnimalAggregates struct {
	Total     int64
	BySex     []LabelCount
	BySpecies []LabelCount
	ByMonth   []PeriodCount
}

type ProcedureAggregates struct {
	Total        int64
	Active       int64
	AveragePrice decimal.Decimal
	MostUsed     *TopEntry
	Revenue      decimal.Decimal
}

type VeterinarianAggregates struct {
	Total            int64
	BySpecialization []LabelCount
	MostActive       *TopEntry
	Consultations    int64
}

type ConsultationAggregates struct {
	Total          int64
	ByStatus       []LabelCount
	Revenue        decimal.Decimal
	Billable       int64
	ByVeterinarian []TopEntry
	DailyCounts    []PeriodCount
	DailyRevenue   []PeriodAmount
}

type ChartAggregates struct {
	ConsultationsByMonth []PeriodCount
	RevenueByMonth       []PeriodAmount
	AnimalsBySpecies     []LabelCount
}

type DashboardAggregates struct {
	Clients                int64           `db:"clientes"`
	Animals                int64           `db:"animais"`
	Veterinarians          int64           `db:"veterinarios"`
	Consultations          int64           `db:"consultas"`
	Procedures             int64           `db:"procedures"`
	ConsultationsThisMonth int64           `db:"consultas_mes"`
	RevenueThisMonth       decimal.Decimal `db:"receita_mes"`
	Pending                int64           `db:"pendentes"`
}
