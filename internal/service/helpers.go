package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/rectplan/internal/domain"
)

// validationError joins errs under ErrInvalidConfig, or returns nil.
func validationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w (%d errors): %w", ErrInvalidConfig, len(errs), errors.Join(errs...))
}

// prepareConfig applies the defaults merge and rejects out-of-contract input.
func prepareConfig(cfg domain.ProcessConfig) (domain.ProcessConfig, error) {
	norm := domain.Normalize(cfg)
	if err := validationError(norm.Validate()); err != nil {
		return cfg, err
	}
	return norm, nil
}
