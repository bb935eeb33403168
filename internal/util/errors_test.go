package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            *ParseError
		expectedString string
		isTooLarge     bool
	}{
		{
			name:           "without cause",
			err:            NewParseError(ReasonHeader, "malformed header line"),
			expectedString: "parse error: malformed header line",
		},
		{
			name:           "with cause",
			err:            NewParseErrorWithCause(ReasonChunk, "unable to parse chunk size", errors.New("bad hex")),
			expectedString: "parse error: unable to parse chunk size: bad hex",
		},
		{
			name:           "size limit",
			err:            NewParseError(ReasonSizeLimit, "max request body size exceeded"),
			expectedString: "parse error: max request body size exceeded",
			isTooLarge:     true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expectedString, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrParse)
			assert.Equal(t, tt.isTooLarge, errors.Is(tt.err, ErrBodyTooLarge))
			assert.True(t, IsParseError(tt.err))
			assert.False(t, IsUsageError(tt.err))
		})
	}
}

func TestParseReason(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("feed: %w", NewParseError(ReasonVersion, "HTTP version not supported"))
	assert.Equal(t, ReasonVersion, ParseReason(wrapped))
	assert.Equal(t, ReasonUnclassified, ParseReason(errors.New("boom")))
}

func TestUsageError(t *testing.T) {
	t.Parallel()

	err := NewUsageError("write", ErrTransferEncoding)
	assert.Equal(t, "write: "+ErrTransferEncoding.Error(), err.Error())
	assert.ErrorIs(t, err, ErrTransferEncoding)
	assert.True(t, IsUsageError(err))
	assert.False(t, IsParseError(err))

	verErr := NewUnsupportedVersionError(1)
	assert.Equal(t, "version: unsupported HTTP version 1", verErr.Error())
	assert.ErrorIs(t, verErr, ErrUnsupportedVersion)

	var target *UsageError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", verErr), &target)
	assert.Equal(t, "version", target.Op)
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		field          string
		message        string
		cause          error
		expectedString string
	}{
		{
			name:           "with field",
			field:          "limits.maxRequestSize",
			message:        "must be positive",
			expectedString: "config error at limits.maxRequestSize: must be positive",
		},
		{
			name:           "without field",
			message:        "invalid configuration",
			expectedString: "config error: invalid configuration",
		},
		{
			name:           "with cause",
			field:          "version",
			message:        "unsupported version",
			cause:          ErrUnsupportedVersion,
			expectedString: "config error at version: unsupported version",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var err *ConfigError
			if tt.cause != nil {
				err = NewConfigErrorWithCause(tt.field, tt.message, tt.cause)
			} else {
				err = NewConfigError(tt.field, tt.message)
			}

			assert.Equal(t, tt.expectedString, err.Error())
			assert.Equal(t, tt.cause, err.Unwrap())
			assert.ErrorIs(t, err, ErrConfigInvalid)
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("invalid routes")
	assert.False(t, err.HasErrors())
	assert.Equal(t, "validation error: invalid routes", err.Error())

	err.AddField("routes[0].name", "is required")
	assert.True(t, err.HasErrors())
	assert.Contains(t, err.Error(), "routes[0].name")
	assert.ErrorIs(t, err, ErrConfigInvalid)

	var empty ValidationError
	empty.AddField("a", "b")
	assert.Len(t, empty.Fields, 1)
}

func TestRouteErrors(t *testing.T) {
	t.Parallel()

	nf := NewRouteNotFoundError("object_get")
	assert.Equal(t, "route not found: object_get", nf.Error())
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.True(t, IsUsageError(nf))

	mp := NewMissingParameterError("object_get", "format")
	assert.Equal(t, `route object_get: missing parameter "format"`, mp.Error())
	assert.ErrorIs(t, mp, ErrMissingParameter)
	assert.True(t, IsUsageError(mp))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapError(nil, "context"))

	err := WrapError(ErrNotReady, "finalize")
	assert.Equal(t, "finalize: message not ready", err.Error())
	assert.ErrorIs(t, err, ErrNotReady)
}
