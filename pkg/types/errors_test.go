package types

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidf(t *testing.T) {
	err := Invalidf("entry title exceeds %d characters", 200)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "entry title exceeds 200 characters")
	assert.NotErrorIs(t, err, ErrStore)
}

func TestStoref(t *testing.T) {
	err := Storef(io.ErrUnexpectedEOF, "scan entry %d", 7)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "scan entry 7")
}

func TestErrorKindsDistinct(t *testing.T) {
	kinds := []error{ErrNotFound, ErrUnauthorized, ErrValidation, ErrStore, ErrStoreClosed}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
