package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataWriter(t *testing.T) {
	_, err := NewDataWriter(&bytes.Buffer{}, "json")
	assert.NoError(t, err)

	_, err = NewDataWriter(&bytes.Buffer{}, "table")
	assert.NoError(t, err)

	_, err = NewDataWriter(&bytes.Buffer{}, "yaml")
	assert.Error(t, err)
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	dw, err := NewDataWriter(&buf, "table")
	require.NoError(t, err)

	err = NewKeyValueBuilder("Result").
		Add("zeta", 1).
		Add("alpha", "first").
		Add("empty", "").
		AddIf(false, "skipped", "x").
		Write(dw)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Result\n"))
	assert.Less(t, strings.Index(out, "alpha:"), strings.Index(out, "zeta:"))
	assert.NotContains(t, out, "empty")
	assert.NotContains(t, out, "skipped")
}

func TestTableBuilder(t *testing.T) {
	var buf bytes.Buffer
	dw, err := NewDataWriter(&buf, "table")
	require.NoError(t, err)

	err = NewTableBuilder("NAME", "VALUE").
		AddRow("one", "1").
		AddRow("two", "2").
		Write(dw)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[2], "two"))
}

func TestWriteStructTableUnsupported(t *testing.T) {
	dw, err := NewDataWriter(&bytes.Buffer{}, "table")
	require.NoError(t, err)
	assert.Error(t, dw.WriteStruct(struct{}{}))
}
