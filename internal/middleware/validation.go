package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vetvalidator "github.com/jwalitptl/vetclinic-api/pkg/validator"
)

// RegisterValidators installs the custom binding tags (cpf, cep, uf) on gin's
// validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return vetvalidator.Register(v)
}
