package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := rootCmd()

	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", run.Name())
	for _, flag := range []string{"members", "posts", "seed", "missing-rate", "schema"} {
		assert.NotNil(t, run.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, "100", run.Flags().Lookup("members").DefValue)

	schema, _, err := root.Find([]string{"schema"})
	require.NoError(t, err)
	assert.Equal(t, "schema", schema.Name())
}
