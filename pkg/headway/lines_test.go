package headway

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineWriter_ForwardsWholeLines(t *testing.T) {
	m, out := newTestManager(t, true)
	b := m.New().WithLength(2)
	require.NoError(t, m.Tick())
	out.Reset()

	w := m.LineWriter()
	fmt.Fprint(w, "building ")
	fmt.Fprint(w, "step")
	assert.Empty(t, out.String(), "partial lines are held back")

	fmt.Fprint(w, " 1\nbuilding step 2\npartial")
	assert.Equal(t, "\x1b[0Jbuilding step 1\nbuilding step 2\n", out.String())
	assert.Equal(t, 2, w.Lines())

	out.Reset()
	require.NoError(t, w.Close())
	assert.Equal(t, "partial\n", out.String())
	assert.Equal(t, 3, w.Lines())

	require.NoError(t, w.Flush(), "flushing an empty writer is a no-op")
	b.Finish()
}
