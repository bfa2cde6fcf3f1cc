package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		out, err := RenderTemplate("no markers here", nil)
		require.NoError(t, err)
		assert.Equal(t, "no markers here", out)
	})

	t.Run("values substituted", func(t *testing.T) {
		out, err := RenderTemplate("You write for {{ .audience }}.", map[string]any{"audience": "engineers"})
		require.NoError(t, err)
		assert.Equal(t, "You write for engineers.", out)
	})

	t.Run("helper funcs", func(t *testing.T) {
		out, err := RenderTemplate(`{{ upper .tone }} and {{ default "general" .audience }}`, map[string]any{
			"tone":     "formal",
			"audience": "",
		})
		require.NoError(t, err)
		assert.Equal(t, "FORMAL and general", out)
	})

	t.Run("missing key errors", func(t *testing.T) {
		_, err := RenderTemplate("{{ .missing }}", map[string]any{})
		require.Error(t, err)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := RenderTemplate("{{ .unclosed", nil)
		require.Error(t, err)
	})
}
