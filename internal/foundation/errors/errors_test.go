package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "mdport.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, ok := err.Context().Get("file")
		require.True(t, ok)
		assert.Equal(t, "mdport.yaml", file)
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.True(t, HasSeverity(err, SeverityFatal))
		assert.False(t, err.CanRetry())
		assert.True(t, err.IsSeverity(SeverityFatal))
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := StorageError("save draft failed").Build()
		wrapped := fmt.Errorf("command: %w", inner)

		assert.True(t, IsClassified(wrapped))
		assert.Equal(t, CategoryStorage, GetCategory(wrapped))
		assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("disk full")
	err := WrapError(originalErr, CategoryFileSystem, "write output failed").
		Warning().
		Retryable().
		WithContext("path", "/tmp/out.html").
		Build()

	assert.Equal(t, SeverityWarning, err.Severity())
	assert.Equal(t, RetryBackoff, err.RetryStrategy())
	assert.True(t, err.CanRetry())
	assert.ErrorIs(t, err, originalErr)
	assert.Contains(t, err.Error(), "[filesystem:warning] write output failed: disk full")
}

func TestSentinelWrapKeepsIdentity(t *testing.T) {
	sentinel := SerializationError("serialization failed").Build()
	cause := errors.New("void element has children")

	err := sentinel.Wrap(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ParseError("serialization failed").Build())
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := NotFoundError("draft not found").Build()
	derived := base.WithContext("draft", "notes")

	_, ok := base.Context().Get("draft")
	assert.False(t, ok)
	name, ok := derived.Context().Get("draft")
	require.True(t, ok)
	assert.Equal(t, "notes", name)
}

func TestBuilderDefaults(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		category ErrorCategory
		severity ErrorSeverity
		retry    bool
	}{
		{"config", ConfigError("c").Build(), CategoryConfig, SeverityFatal, false},
		{"validation", ValidationError("v").Build(), CategoryValidation, SeverityError, false},
		{"not found", NotFoundError("n").Build(), CategoryNotFound, SeverityError, false},
		{"storage", StorageError("s").Build(), CategoryStorage, SeverityError, false},
		{"parse", ParseError("p").Build(), CategoryParse, SeverityWarning, false},
		{"sanitize", SanitizeError("s").Build(), CategorySanitize, SeverityWarning, false},
		{"serialization", SerializationError("s").Build(), CategorySerialization, SeverityWarning, false},
		{"wrapped retryable", WrapError(errors.New("eio"), CategoryFileSystem, "f").Retryable().Build(), CategoryFileSystem, SeverityError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, GetCategory(tt.err))
			assert.True(t, HasSeverity(tt.err, tt.severity))
			assert.Equal(t, tt.retry, tt.err.CanRetry())
		})
	}
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"not found", NotFoundError("draft missing").Build(), 4},
		{"config", ConfigError("bad config").Build(), 7},
		{"storage", StorageError("db locked").Build(), 11},
		{"serialization", SerializationError("render").Build(), 10},
		{"wrapped config", fmt.Errorf("load: %w", ConfigError("bad").Build()), 7},
		{"unclassified", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	internal := SerializationError("render failed").Build()
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(internal))
	assert.Equal(t, internal.Error(), verbose.FormatError(internal))

	notFound := NotFoundError("draft not found").Build()
	assert.Equal(t, "Error: draft not found", quiet.FormatError(notFound))
	assert.Equal(t, "Error: boom", quiet.FormatError(errors.New("boom")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("unsupported version").WithContext("version", "9").Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: unsupported version\n", stderr.String())
	assert.Contains(t, logs.String(), "category=config")
	assert.Contains(t, logs.String(), "version=9")
}

func TestCLIErrorAdapter_LogsOnlyFatalWhenQuiet(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		verbose bool
		logged  bool
	}{
		{"fatal", ConfigError("bad").Build(), false, true},
		{"error severity", NotFoundError("gone").Build(), false, false},
		{"warning", SanitizeError("dropped").Build(), false, false},
		{"unclassified", errors.New("boom"), false, true},
		{"verbose", NotFoundError("gone").Build(), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			adapter := NewCLIErrorAdapter(tt.verbose, slog.New(slog.NewTextHandler(&logs, nil)))
			adapter.stderr = &bytes.Buffer{}
			adapter.exit = func(int) {}

			adapter.HandleError(tt.err)
			assert.Equal(t, tt.logged, logs.Len() > 0)
		})
	}
}

func TestCLIErrorAdapter_LogsRetryable(t *testing.T) {
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(true, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &bytes.Buffer{}
	adapter.exit = func(int) {}

	adapter.HandleError(WrapError(errors.New("eio"), CategoryFileSystem, "write failed").Retryable().Build())
	assert.Contains(t, logs.String(), "retryable=true")

	logs.Reset()
	adapter.HandleError(ConfigError("bad").Build())
	assert.NotContains(t, logs.String(), "retryable")
}
