package services

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a requested product, or any product at all, is absent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func productNotFound(sku string) error {
	return &NotFoundError{Message: fmt.Sprintf("Product not found sku %s", sku)}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
