package lock

import (
	"fmt"
	"testing"

	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
	"github.com/podded/podded/engine/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name   string
		state  State
		req    Request
		want   State
		locked bool
	}{
		{"read while unlocked", Unlocked, Read, Unlocked, false},
		{"read while locked", Locked, Read, Locked, false},
		{"mutate while unlocked", Unlocked, Mutate, Unlocked, false},
		{"mutate while locked", Locked, Mutate, Locked, true},
		{"lock while unlocked", Unlocked, Lock, Locked, false},
		{"lock while locked", Locked, Lock, Locked, true},
		{"force while locked", Locked, Force, Unlocked, false},
		{"force while unlocked", Unlocked, Force, Locked, false},
	}
	for _, tc := range cases {
		t.Run("Should handle "+tc.name, func(t *testing.T) {
			got, err := Check(tc.state, tc.req, "op")
			assert.Equal(t, tc.want, got)
			if tc.locked {
				assert.ErrorIs(t, err, core.ErrLocked)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGuard(t *testing.T) {
	text := "LOCK = %s\nBUILD = \"\"\nCOMMAND = []\n"
	parse := func(t *testing.T, lock string) *script.Document {
		t.Helper()
		doc, err := script.NewDocument(slot.Default(), "doc", fmt.Sprintf(text, lock), 0)
		require.NoError(t, err)
		return doc
	}
	t.Run("Should let an unlocked document change", func(t *testing.T) {
		doc := parse(t, "false")
		assert.Equal(t, Unlocked, StateOf(doc))
		assert.NoError(t, Guard(doc, "clear"))
	})
	t.Run("Should name the rejected operation", func(t *testing.T) {
		doc := parse(t, "true")
		err := Guard(doc, "clear")
		require.ErrorIs(t, err, core.ErrLocked)
		assert.Contains(t, err.Error(), "clear")
	})
}
