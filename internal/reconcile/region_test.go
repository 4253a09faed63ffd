package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedPet = `// Pet is generated from the petstore API schema.

package models

type Pet struct {
	Id   int64
	Name string
}

// NewPet returns a Pet populated with default values.
func NewPet() Pet {
	return Pet{}
}

// DisplayName is hand-written.
func (p Pet) DisplayName() string {
	return p.Name
}
`

func TestManualBoundary(t *testing.T) {
	t.Run("starts at first func", func(t *testing.T) {
		boundary := ManualBoundary(storedPet)
		require.Positive(t, boundary)

		manual := storedPet[boundary:]
		assert.True(t, strings.HasPrefix(manual, "// NewPet returns"),
			"doc comment above the first func belongs to the manual region")
		assert.Contains(t, manual, "DisplayName")
	})

	t.Run("no func means no manual region", func(t *testing.T) {
		assert.Equal(t, -1, ManualBoundary("package models\n\ntype Pet struct{}\n"))
	})

	t.Run("method bodies do not shadow top-level funcs", func(t *testing.T) {
		src := "package models\n\nvar f = func() {}\n\nfunc Top() {}\n"
		boundary := ManualBoundary(src)
		assert.Equal(t, strings.Index(src, "func Top"), boundary)
	})
}

func TestStructBlock(t *testing.T) {
	t.Run("finds the block with offsets", func(t *testing.T) {
		block, start, end, ok := StructBlock(storedPet, "Pet")
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(block, "type Pet struct {"))
		assert.True(t, strings.HasSuffix(block, "}"))
		assert.Equal(t, block, storedPet[start:end])
	})

	t.Run("nested braces are balanced", func(t *testing.T) {
		src := "type Pet struct {\n\tTags map[string]struct {\n\t\tValue string\n\t}\n}\nfunc After() {}\n"
		block, _, _, ok := StructBlock(src, "Pet")
		require.True(t, ok)
		assert.Contains(t, block, "Value string")
		assert.NotContains(t, block, "After")
	})

	t.Run("missing type", func(t *testing.T) {
		_, _, _, ok := StructBlock(storedPet, "Order")
		assert.False(t, ok)
	})

	t.Run("name is matched exactly", func(t *testing.T) {
		src := "type Carpet struct {\n\tFiber string\n}\n"
		_, _, _, ok := StructBlock(src, "Pet")
		assert.False(t, ok)
	})
}

func TestRenameType(t *testing.T) {
	t.Run("whole identifiers only", func(t *testing.T) {
		src := "type Upet struct {\n\tUpetId int64\n}\nvar _ = Upet{}\n"
		got := RenameType(src, "Upet", "Pet")
		assert.Contains(t, got, "type Pet struct")
		assert.Contains(t, got, "var _ = Pet{}")
		assert.Contains(t, got, "UpetId", "longer identifiers must not be rewritten")
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		src := "type Pet struct{}"
		assert.Equal(t, src, RenameType(src, "Pet", "Pet"))
	})
}
