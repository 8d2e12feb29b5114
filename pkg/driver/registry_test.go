package driver

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basehub-labs/basehub/pkg/core"
)

func TestUnsupportedSourceError_Error(t *testing.T) {
	err := &UnsupportedSourceError{
		Source:    core.SourceType{Kind: core.SourceDatabase, Variant: "postgres"},
		Available: []string{"mysql", "sqlite"},
	}

	msg := err.Error()

	assert.NotEmpty(t, msg, "error message should not be empty")
	assert.Contains(t, msg, "postgres", "error should mention the unsupported variant")
	assert.Contains(t, msg, "mysql", "error should list the available drivers")
}

func TestRegister(t *testing.T) {
	Register("test_driver_internal", func(_ *slog.Logger, _ core.ConfigStore) Driver { return nil })

	assert.True(t, IsRegistered("test_driver_internal"), "test_driver_internal should be registered after Register()")

	factory, ok := Get("test_driver_internal")
	assert.True(t, ok, "Get(test_driver_internal) should return true after Register()")
	assert.NotNil(t, factory, "Get(test_driver_internal) should return non-nil factory")

	assert.Contains(t, ListVariants(), "test_driver_internal")
}

func TestRegister_CaseInsensitive(t *testing.T) {
	Register("Test_Driver_MixedCase", func(_ *slog.Logger, _ core.ConfigStore) Driver { return nil })

	assert.True(t, IsRegistered("test_driver_mixedcase"), "lookup should not depend on registration case")
	assert.True(t, IsRegistered("TEST_DRIVER_MIXEDCASE"))
	assert.Contains(t, ListVariants(), "test_driver_mixedcase", "variants should be stored lowercased")

	cfg := core.ConnectionConfig{
		Source: core.SourceType{Kind: core.SourceDatabase, Variant: "Test_Driver_MixedCase"},
	}
	_, err := New(cfg, nil, nil)
	assert.NoError(t, err, "New should dispatch regardless of registration case")
}

func TestNew_EmptyKind(t *testing.T) {
	cfg := core.ConnectionConfig{}

	_, err := New(cfg, nil, nil)
	require.Error(t, err, "New with empty source kind should fail")
	assert.Equal(t, "source kind not specified", err.Error(), "error message")
}

func TestNew_NonDatabaseKind(t *testing.T) {
	cfg := core.ConnectionConfig{
		Source: core.SourceType{Kind: core.SourceFile, Variant: "csv"},
	}

	_, err := New(cfg, nil, nil)
	require.Error(t, err)

	var unsupported *UnsupportedSourceError
	require.ErrorAs(t, err, &unsupported, "non-database kinds should fail with UnsupportedSourceError")
	assert.Equal(t, core.SourceFile, unsupported.Source.Kind)
}

func TestNew_UnregisteredVariant(t *testing.T) {
	cfg := core.ConnectionConfig{
		Source: core.SourceType{Kind: core.SourceDatabase, Variant: "no_such_variant"},
	}

	_, err := New(cfg, nil, nil)
	require.Error(t, err)

	var unsupported *UnsupportedSourceError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "no_such_variant", unsupported.Source.Variant)
}
