package slot

import (
	"testing"

	"github.com/podded/podded/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := Default()
	t.Run("Should find slots ignoring case", func(t *testing.T) {
		for _, name := range []string{"build", "BUILD", "Build", " build "} {
			v, err := reg.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, Build, v.Name)
		}
	})
	t.Run("Should report unknown names as not found", func(t *testing.T) {
		v, err := reg.Lookup("containerfile")
		assert.Nil(t, v)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
	t.Run("Should not match partial names", func(t *testing.T) {
		_, err := reg.Lookup("BUIL")
		assert.ErrorIs(t, err, core.ErrNotFound)
		_, err = reg.Lookup("RUN")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestRegistry_Sets(t *testing.T) {
	reg := Default()
	t.Run("Should list stored slots in order", func(t *testing.T) {
		var names []string
		for _, v := range reg.Stored() {
			names = append(names, v.Name)
		}
		assert.Equal(t, []string{Lock, Build, Command}, names)
	})
	t.Run("Should exclude derived slots from editable ones", func(t *testing.T) {
		for _, v := range reg.Editable() {
			assert.NotEqual(t, Tag, v.Name)
		}
		assert.Len(t, reg.Editable(), len(reg.Printable())-1)
	})
	t.Run("Should keep derived slots printable", func(t *testing.T) {
		assert.Contains(t, reg.Names(), Tag)
		assert.Equal(t, Lock, reg.Printable()[0].Name)
	})
	t.Run("Should not let callers mutate the registry order", func(t *testing.T) {
		p := reg.Printable()
		p[0] = nil
		assert.NotNil(t, reg.Printable()[0])
	})
}

func TestRegistry_Templates(t *testing.T) {
	reg := Default()
	t.Run("Should differ only in the run flag between run templates", func(t *testing.T) {
		run := reg.MustLookup(RunCommand).Default.Items()
		runIT := reg.MustLookup(RunITCommand).Default.Items()
		require.Equal(t, len(run), len(runIT))
		diff := 0
		for i := range run {
			if run[i] != runIT[i] {
				diff++
			}
		}
		assert.Equal(t, 1, diff)
	})
}

func TestValue(t *testing.T) {
	t.Run("Should normalize multiline text", func(t *testing.T) {
		assert.Equal(t, "FROM x\n", Text("FROM x").Str())
		assert.Equal(t, "a\nb\n", Text("a\r\nb\r\n").Str())
		assert.Equal(t, "", Text("  \n").Str())
	})
	t.Run("Should compare values by kind and content", func(t *testing.T) {
		assert.True(t, List("a", "b").Equal(List("a", "b")))
		assert.False(t, List("a").Equal(List("a", "b")))
		assert.False(t, String("").Equal(Text("")))
		assert.True(t, Bool(true).Equal(Bool(true)))
	})
	t.Run("Should isolate list values from the caller", func(t *testing.T) {
		items := []string{"a", "b"}
		v := List(items...)
		items[0] = "z"
		assert.Equal(t, []string{"a", "b"}, v.Items())
	})
	t.Run("Should report emptiness per kind", func(t *testing.T) {
		assert.True(t, List().IsEmpty())
		assert.True(t, Bool(false).IsEmpty())
		assert.True(t, Text("").IsEmpty())
		assert.False(t, String("x").IsEmpty())
	})
}
