package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

var errBase = errors.New("base failure")

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, CodeSuccess},
		{"plain error", errBase, CodeInternalErr},
		{"coded", NewExitError(CodeInvalidData, errBase), CodeInvalidData},
		{"wrapped coded", fmt.Errorf("outer: %w", NewExitError(CodeInvalidUsage, errBase)), CodeInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestRootErrorAndHasExitCode(t *testing.T) {
	err := NewExitErrorWithMessage(CodeInvalidData, "网格太大", fmt.Errorf("mid: %w", errBase))

	assert.True(t, HasExitCode(err))
	assert.False(t, HasExitCode(errBase))
	assert.Equal(t, errBase, RootError(err))
	assert.ErrorIs(t, err, errBase)
	assert.Equal(t, "网格太大: mid: base failure", err.Error())
}

func TestFormatErrorAndCode(t *testing.T) {
	out, code := FormatErrorAndCode(NewExitErrorWithMessage(CodeInvalidData, "bad n", errBase))
	assert.Equal(t, CodeInvalidData, code)
	assert.Equal(t, int64(CodeInvalidData), gjson.Get(out, "code").Int())
	assert.Equal(t, "bad n", gjson.Get(out, "message").String())
	assert.Equal(t, "base failure", gjson.Get(out, "error").String())

	out, code = FormatErrorAndCode(errBase)
	assert.Equal(t, CodeInternalErr, code)
	assert.Equal(t, "base failure", gjson.Get(out, "error").String())
}
