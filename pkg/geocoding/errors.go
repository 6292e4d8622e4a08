package geocoding

import (
	"errors"
	"fmt"
)

var (
	ErrAddressNotFound   = errors.New("address not found")
	ErrResolutionTimeout = errors.New("address resolution timed out")

	ErrEmptyAddress       = errors.New("address is empty")
	ErrNoMatch            = errors.New("geocoder returned no match")
	ErrInvalidCoordinates = errors.New("geocoder returned invalid coordinates")
)

// AddressNotFoundError reports an address the geocoder could not resolve. Reason holds the provider failure.
// errors.Is(err, ErrAddressNotFound) matches it.
type AddressNotFoundError struct {
	Address string
	Reason  error
}

func (e *AddressNotFoundError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("address %q not found", e.Address)
	}
	return fmt.Sprintf("address %q not found: %v", e.Address, e.Reason)
}

func (e *AddressNotFoundError) Unwrap() error {
	return e.Reason
}

func (e *AddressNotFoundError) Is(target error) bool {
	return target == ErrAddressNotFound
}
