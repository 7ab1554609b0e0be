package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Compare(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}
	a := write("a.xlsx", "PK-same")
	b := write("b.xlsx", "PK-same")
	c := write("c.xlsx", "PK-diff!")

	diff, err := NewBytes().Compare(a, b, Options{})
	require.NoError(t, err)
	assert.Nil(t, diff)

	diff, err = NewBytes().Compare(a, c, Options{})
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, "a.xlsx", diff.Part)
	assert.Contains(t, diff.Diff, "offset 3")

	_, err = NewBytes().Compare(filepath.Join(dir, "missing.xlsx"), a, Options{})
	assert.Error(t, err)
}
