package taylorerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

func TestNew(t *testing.T) {
	err := taylorerr.New(taylorerr.TypeInvalidOrder, "order must be >= 0, got -1")
	assert.Equal(t, taylorerr.TypeInvalidOrder, err.Type)
	assert.Equal(t, "[InvalidOrder] order must be >= 0, got -1", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := taylorerr.Newf(taylorerr.TypeParse, "col %d: unexpected %q", 4, ")")
	assert.Equal(t, `[ParseError] col 4: unexpected ")"`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := taylorerr.Wrap(taylorerr.TypeExport, cause, "write csv")
	assert.Equal(t, "[ExportError] write csv: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIs_WalksChain(t *testing.T) {
	inner := taylorerr.New(taylorerr.TypeDifferentiation, "abs is not differentiable")
	outer := taylorerr.Wrap(taylorerr.TypeSubstitution, inner, "order 2")
	wrapped := fmt.Errorf("expand: %w", outer)

	assert.True(t, taylorerr.Is(wrapped, taylorerr.TypeSubstitution))
	assert.True(t, taylorerr.Is(wrapped, taylorerr.TypeDifferentiation))
	assert.False(t, taylorerr.Is(wrapped, taylorerr.TypeInvalidOrder))
	assert.False(t, taylorerr.Is(errors.New("plain"), taylorerr.TypeInvalidOrder))
	assert.False(t, taylorerr.Is(nil, taylorerr.TypeInvalidOrder))
}

func TestErrorsIs_MatchesByType(t *testing.T) {
	err := fmt.Errorf("ctx: %w", taylorerr.New(taylorerr.TypeInvalidRange, "step must be > 0"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, taylorerr.New(taylorerr.TypeInvalidRange, "")))
	assert.False(t, errors.Is(err, taylorerr.New(taylorerr.TypeExport, "")))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, taylorerr.TypeInvalidConfig, taylorerr.TypeOf(fmt.Errorf("x: %w", taylorerr.New(taylorerr.TypeInvalidConfig, "bad"))))
	assert.Equal(t, taylorerr.ErrorType(""), taylorerr.TypeOf(errors.New("plain")))
}
