package migration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntl/internal/config"
)

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "default", input: config.DefaultDBName, expected: true},
		{name: "digits and dollar", input: "ci_2024$hist", expected: true},
		{name: "empty", input: "", expected: false},
		{name: "too long", input: strings.Repeat("a", 65), expected: false},
		{name: "backtick", input: "a`b", expected: false},
		{name: "quote", input: "a'b", expected: false},
		{name: "comment", input: "a--b", expected: false},
		{name: "keyword", input: "drop_me", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isValidDatabaseName(tt.input))
		})
	}
}

func TestEnsureDatabase_RejectsInvalidNameBeforeConnecting(t *testing.T) {
	cfg := config.New()
	cfg.Database.Name = "x; DROP"

	created, err := NewDatabaseManager(cfg).EnsureDatabase(context.Background())
	require.Error(t, err)
	assert.False(t, created)
	assert.Contains(t, err.Error(), "invalid database name")
}

func TestSchema(t *testing.T) {
	require.Len(t, Schema, 2)
	assert.Contains(t, Schema[0], "ntl_runs")
	assert.Contains(t, Schema[1], "ntl_nodes")
	for _, stmt := range Schema {
		assert.True(t, strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS"))
	}
}
