package payment

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidIntent           = errors.New("invalid payment intent")
	ErrAccountCreationDisabled = errors.New("destination token account doesn't exist and account creation is disabled")
	ErrTransactionTooLarge     = errors.New("transaction exceeds maximum size")
)
