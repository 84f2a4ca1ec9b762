package model

// Client is a clinic customer who owns animals.
type Client struct {
	Base
	Name       string `db:"nome" json:"nome"`
	Email      string `db:"email" json:"email"`
	Phone      string `db:"telefone" json:"telefone"`
	NationalID string `db:"cpf" json:"cpf"`
	Address    string `db:"endereco" json:"endereco"`
	City       string `db:"cidade" json:"cidade"`
	State      string `db:"estado" json:"estado"`
	PostalCode string `db:"cep" json:"cep"`

	Animals []*Animal `db:"-" json:"animals,omitempty"`
}

type ClientRequest struct {
	Name       string `json:"nome" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Phone      string `json:"telefone" binding:"required,max=20"`
	NationalID string `json:"cpf" binding:"required,cpf"`
	Address    string `json:"endereco" binding:"required,max=255"`
	City       string `json:"cidade" binding:"required,max=100"`
	State      string `json:"estado" binding:"required,uf"`
	PostalCode string `json:"cep" binding:"required,cep"`
}

func (r *ClientRequest) Apply(c *Client) {
	c.Name = r.Name
	c.Email = r.Email
	c.Phone = r.Phone
	c.NationalID = r.NationalID
	c.Address = r.Address
	c.City = r.City
	c.State = r.State
	c.PostalCode = r.PostalCode
}

// ClientFilters narrows the client report and list.
type ClientFilters struct {
	Search  string
	Created DateRange
}
