package model

// Veterinarian is clinic staff who performs consultations.
type Veterinarian struct {
	Base
	Name           string  `db:"nome" json:"nome"`
	Email          string  `db:"email" json:"email"`
	Phone          string  `db:"telefone" json:"telefone"`
	License        string  `db:"crmv" json:"crmv"`
	Specialization *string `db:"especialidade" json:"especialidade"`
	Notes          *string `db:"observacoes" json:"observacoes"`

	ConsultationCount *int64 `db:"consultas_count" json:"consultas_count,omitempty"`
}

type VeterinarianRequest struct {
	Name           string  `json:"nome" binding:"required,max=255"`
	Email          string  `json:"email" binding:"required,email,max=255"`
	Phone          string  `json:"telefone" binding:"required,max=20"`
	License        string  `json:"crmv" binding:"required,max=20"`
	Specialization *string `json:"especialidade" binding:"omitempty,max=100"`
	Notes          *string `json:"observacoes"`
}

func (r *VeterinarianRequest) Apply(v *Veterinarian) {
	v.Name = r.Name
	v.Email = r.Email
	v.Phone = r.Phone
	v.License = r.License
	v.Specialization = r.Specialization
	v.Notes = r.Notes
}

// VeterinarianFilters narrows the veterinarian report and list.
type VeterinarianFilters struct {
	Search         string
	Specialization string
	Created        DateRange
}
