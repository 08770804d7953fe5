package ptr

import (
	"time"

	"github.com/movebid/goapi/domain"
)

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Uint64 return a pointer to the input value
func Uint64(value uint64) *uint64 {
	return &value
}

// Bool return a pointer to the input value
func Bool(value bool) *bool {
	return &value
}

// Time return a pointer to the input value
func Time(value time.Time) *time.Time {
	return &value
}

// Address return a pointer to the input value
func Address(value domain.Address) *domain.Address {
	return &value
}

// Octa return a pointer to the input value
func Octa(value domain.OctaAmount) *domain.OctaAmount {
	return &value
}
