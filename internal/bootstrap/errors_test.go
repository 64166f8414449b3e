package bootstrap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFatalErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Fatal(Integrity, cause)

	var fatal *FatalError
	require.True(t, errors.As(err, &fatal))
	require.Equal(t, Integrity, fatal.Kind)
	require.ErrorIs(t, err, cause)
}

func TestFatalNilIsNil(t *testing.T) {
	require.NoError(t, Fatal(Input, nil))
}
