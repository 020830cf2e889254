package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-io/verdant/internal/cli"
	"github.com/verdant-io/verdant/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "verdant", root.Use)
		assert.NotEmpty(t, root.Short)
	})

	t.Run("subcommands registered", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		names := make([]string, 0, len(root.Commands()))
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		assert.Contains(t, names, "emissions")
		assert.Contains(t, names, "compliance")
		assert.Contains(t, names, "forecast")
		assert.Contains(t, names, "factors")
		assert.Contains(t, names, "serve")
	})
}
