package foliotrack

import (
	"errors"
	"fmt"
)

// ErrPriceUnavailable is returned when the price source has no usable close
// for a symbol, including the lookback window. Operations that need a price
// to trade abort without touching the ledger.
var ErrPriceUnavailable = errors.New("price unavailable")

// ValidationError reports a business-rule violation (non-positive quantity,
// insufficient cash, insufficient holdings, unknown symbol). The triggering
// operation is a no-op.
type ValidationError struct {
	Op     string // operation that was rejected, e.g. "buy"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func validationErrf(op, format string, args ...any) error {
	return &ValidationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
