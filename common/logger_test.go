package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogWarning, &buf)

	l.Log(LogDebug, "should not appear")
	require.Empty(t, buf.String())

	l.Log(LogError, "should appear")
	require.True(t, strings.Contains(buf.String(), "should appear"))
	require.True(t, strings.Contains(buf.String(), "ERROR:"))
}

func TestLoggerDefaultsToStderrOnNilWriter(t *testing.T) {
	l := NewLogger(LogInfo, nil)
	require.NotNil(t, l)
}

func TestCauseUnwrapsPkgErrorsChain(t *testing.T) {
	root := errors.New("root cause")
	wrapped := errors.Wrap(errors.Wrap(root, "middle"), "outer")

	require.Equal(t, root, Cause(wrapped))
}

func TestCauseReturnsSameErrorWhenUnwrapped(t *testing.T) {
	plain := errors.New("plain")
	require.Equal(t, plain, Cause(plain))
}
