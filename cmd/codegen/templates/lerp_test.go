package templates

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLerpGen(t *testing.T) {
	t.Run("float kinds do not import math", func(t *testing.T) {
		src := LerpGen([]LerpKind{{Name: "Float64", Type: "float64", Mode: LerpFloat}})
		assert.NotContains(t, src, "math")
		assert.Contains(t, src, "package property\n\n// LerpFloat64 is the Interpolator for float64.\n")
	})

	t.Run("rounded kinds import math once", func(t *testing.T) {
		src := LerpGen(DefaultLerpKinds)
		assert.Equal(t, 1, strings.Count(src, `import "math"`))
		assert.NotContains(t, src, "var _")
		assert.Contains(t, src, "package property\n\nimport \"math\"\n\n// LerpFloat64")
	})

	t.Run("checked in file is up to date", func(t *testing.T) {
		want, err := os.ReadFile("../../../property/lerp_gen.go")
		require.NoError(t, err)
		assert.Equal(t, string(want), LerpGen(DefaultLerpKinds))
	})
}
