package providers

import (
	"errors"
	"stampcard/internal/structures"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if cv.conf.Storage.Driver != "memory" && cv.conf.Storage.Path == "" {
		return errors.New("storage.path is required for driver " + cv.conf.Storage.Driver)
	}
	if cv.conf.Card.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Card.Timezone); err != nil {
			return err
		}
	}
	return nil
}
