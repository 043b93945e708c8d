package api

import (
	"errors"
	"math"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Validate: ключ мира валиден всегда.
func (p KeyPayload) Validate() error {
	return nil
}

func (p PointerPayload) Validate() error {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return errors.New("pointer position must be finite")
	}
	return nil
}

func (p ProviderPayload) Validate() error {
	if p.Name == "" {
		return errors.New("provider name is required")
	}
	return nil
}
