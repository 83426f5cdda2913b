package fcerrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for fcerrors:
// - Each Is* helper matches its sentinel through wrapping
// - The formatted constructors preserve class and message
// - Classes never cross-match

func TestClassHelpers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err   error
		match func(error) bool
	}{
		{ErrNotFound, IsNotFound},
		{ErrPermissionDenied, IsPermissionDenied},
		{ErrParse, IsParse},
		{ErrInvalidArgument, IsInvalidArgument},
		{ErrIO, IsIO},
	}

	for _, tc := range cases {
		assert.True(t, tc.match(tc.err))
		assert.True(t, tc.match(Wrap(tc.err, "context")))
		assert.True(t, tc.match(Wrapf(tc.err, "context %d", 1)))
	}
}

func TestHelpersRejectNilAndOtherClasses(t *testing.T) {
	t.Parallel()

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(ErrParse))
	assert.False(t, IsParse(ErrIO))
	assert.False(t, IsIO(New("plain")))
}

func TestFormattedConstructors(t *testing.T) {
	t.Parallel()

	err := NotFoundf("path does not exist: %s", "/tmp/x")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "/tmp/x")

	err = InvalidArgumentf("unsupported model %q", "gpt-9")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "gpt-9")
}

func TestWrapParseAndWrapIO(t *testing.T) {
	t.Parallel()

	cause := New("unexpected token")
	err := WrapParse(cause, "models.py")
	assert.True(t, IsParse(err))
	assert.Contains(t, err.Error(), "unexpected token")
	assert.Contains(t, err.Error(), "models.py")

	err = WrapIO(New("read-only filesystem"), "write output file")
	assert.True(t, IsIO(err))
	assert.Contains(t, err.Error(), "write output file")
}
