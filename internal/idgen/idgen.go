// Package idgen formats and parses the date-scoped sequential identifiers
// used for payments (YYYYMMDD-NNNN) and contracts (YYYYMMDDCONTRACTNNNN).
// The counter runs 0001..9999 within a single day; allocation against the
// store (read max / probe, insert, retry on unique violation) lives in the
// services, this package is pure.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

const (
	dateLayout     = "20060102"
	counterMax     = 9999
	contractMarker = "CONTRACT"
)

// PaymentID formats a payment id for the given date and counter.
func PaymentID(date time.Time, n int) (string, error) {
	if n < 1 || n > counterMax {
		return "", fmt.Errorf("payment counter %d out of range: %w", n, domain.ErrCounterExhausted)
	}
	return fmt.Sprintf("%s-%04d", date.Format(dateLayout), n), nil
}

// ParsePaymentID splits a payment id into its date and counter segments.
func ParsePaymentID(id string) (time.Time, int, error) {
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 || len(parts[1]) != 4 {
		return time.Time{}, 0, fmt.Errorf("malformed payment id %q", id)
	}
	date, err := time.Parse(dateLayout, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("malformed payment id %q: %w", id, err)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return time.Time{}, 0, fmt.Errorf("malformed payment id %q", id)
	}
	return date, n, nil
}

// NextPaymentID returns the id that follows maxExisting for the given date.
// An empty maxExisting starts the day at 0001. The date segment of
// maxExisting must match date; a counter already at 9999 yields
// ErrCounterExhausted.
func NextPaymentID(date time.Time, maxExisting string) (string, error) {
	if maxExisting == "" {
		return PaymentID(date, 1)
	}
	existingDate, n, err := ParsePaymentID(maxExisting)
	if err != nil {
		return "", err
	}
	if existingDate.Format(dateLayout) != date.Format(dateLayout) {
		return "", fmt.Errorf("max id %q is not from day %s", maxExisting, date.Format(dateLayout))
	}
	if n >= counterMax {
		return "", domain.ErrCounterExhausted
	}
	return PaymentID(date, n+1)
}

// ContractID formats a contract id for the given date and counter.
func ContractID(date time.Time, n int) (string, error) {
	if n < 1 || n > counterMax {
		return "", fmt.Errorf("contract counter %d out of range: %w", n, domain.ErrCounterExhausted)
	}
	return fmt.Sprintf("%s%s%04d", date.Format(dateLayout), contractMarker, n), nil
}

// ParseContractID splits a contract id into its date and counter segments.
func ParseContractID(id string) (time.Time, int, error) {
	idx := strings.Index(id, contractMarker)
	if idx != len(dateLayout) {
		return time.Time{}, 0, fmt.Errorf("malformed contract id %q", id)
	}
	date, err := time.Parse(dateLayout, id[:idx])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("malformed contract id %q: %w", id, err)
	}
	suffix := id[idx+len(contractMarker):]
	if len(suffix) != 4 {
		return time.Time{}, 0, fmt.Errorf("malformed contract id %q", id)
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return time.Time{}, 0, fmt.Errorf("malformed contract id %q", id)
	}
	return date, n, nil
}

// CounterMax is the largest counter a single day can hold.
const CounterMax = counterMax
