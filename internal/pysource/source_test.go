package pysource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parse:
// - Collect module-level imports in order, with bound names and exact text
// - Ignore imports nested in functions or classes
// - Collect top-level functions and classes in source order
// - Record decorator spans separately from the def span
// - Spans slice back to the exact original text
// - Detect async functions
// - Reject malformed source with a ParseError carrying line/column
// - Handle empty files

const sampleSource = `"""Module docstring."""
import os
import os.path as osp
from collections import OrderedDict, defaultdict as dd
from . import sibling
from .pkg.mod import thing
from typing import *


def plain():
    import json
    return os.getcwd()


@decorator
@other.decorator(1)
def decorated(x):
    return osp.join(x, "y")


async def fetch():
    return OrderedDict()


class Widget(Base):
    size = 3

    def grow(self, n):
        self.size += n
        return self.size
`

func parseSample(t *testing.T) *SourceUnit {
	t.Helper()
	unit, err := Parse("sample.py", []byte(sampleSource))
	require.NoError(t, err)
	require.NotNil(t, unit)
	return unit
}

func TestParse_ImportCatalog(t *testing.T) {
	t.Parallel()

	unit := parseSample(t)
	require.Len(t, unit.Imports, 6, "nested 'import json' must not be collected")

	assert.Equal(t, "import os", unit.Imports[0].Text)
	assert.Equal(t, []string{"os"}, unit.Imports[0].BoundNames())

	assert.Equal(t, "import os.path as osp", unit.Imports[1].Text)
	assert.Equal(t, []ImportedName{{Qualified: "os.path", Bound: "osp", Aliased: true}}, unit.Imports[1].Names)
	assert.Equal(t, []string{"osp"}, unit.Imports[1].BoundNames())

	from := unit.Imports[2]
	assert.Equal(t, "collections", from.Module)
	assert.Equal(t, []string{"OrderedDict", "dd"}, from.BoundNames())
	assert.Equal(t, "collections.defaultdict", from.Names[1].Qualified)

	assert.True(t, unit.Imports[3].Relative)
	assert.Equal(t, []string{"sibling"}, unit.Imports[3].BoundNames())

	assert.True(t, unit.Imports[4].Relative)
	assert.Equal(t, ".pkg.mod", unit.Imports[4].Module)
	assert.Equal(t, ".pkg.mod.thing", unit.Imports[4].Names[0].Qualified)

	assert.True(t, unit.Imports[5].Wildcard)

	for _, imp := range unit.Imports {
		assert.Equal(t, imp.Text, imp.Span.Text(unit.Text))
	}
}

func TestParse_DottedImportBindsFirstAndLastComponent(t *testing.T) {
	t.Parallel()

	unit, err := Parse("x.py", []byte("import xml.etree.ElementTree\n"))
	require.NoError(t, err)
	require.Len(t, unit.Imports, 1)
	assert.Equal(t, []string{"xml", "ElementTree"}, unit.Imports[0].BoundNames())
}

func TestParse_FutureImport(t *testing.T) {
	t.Parallel()

	unit, err := Parse("x.py", []byte("from __future__ import annotations\nimport sys\n"))
	require.NoError(t, err)
	require.Len(t, unit.Imports, 2)
	assert.True(t, unit.Imports[0].Future)
	assert.False(t, unit.Imports[1].Future)
}

func TestParse_DefinitionCollector(t *testing.T) {
	t.Parallel()

	unit := parseSample(t)
	require.Len(t, unit.Definitions, 4)

	names := []string{}
	for _, d := range unit.Definitions {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"plain", "decorated", "fetch", "Widget"}, names)

	assert.Equal(t, KindFunction, unit.Definitions[0].Kind)
	assert.Equal(t, KindClass, unit.Definitions[3].Kind)
	assert.True(t, unit.Definitions[2].Async)
	assert.False(t, unit.Definitions[0].Async)
}

func TestParse_SpansAreExact(t *testing.T) {
	t.Parallel()

	unit := parseSample(t)

	plain := unit.Definitions[0]
	assert.Equal(t, "def plain():\n    import json\n    return os.getcwd()", plain.Span.Text(unit.Text))
	assert.Equal(t, plain.Span, plain.DefSpan)
	assert.Empty(t, plain.Decorators)

	dec := unit.Definitions[1]
	assert.Equal(t, []string{"@decorator", "@other.decorator(1)"}, dec.DecoratorTexts(unit.Text))
	assert.Equal(t, "def decorated(x):\n    return osp.join(x, \"y\")", dec.DefSpan.Text(unit.Text))
	assert.Equal(t, "@decorator\n@other.decorator(1)\ndef decorated(x):\n    return osp.join(x, \"y\")", dec.Span.Text(unit.Text))
}

func TestParse_IdentifiersIncludeDecoratorsButNotStrings(t *testing.T) {
	t.Parallel()

	unit := parseSample(t)

	dec := unit.Definitions[1]
	assert.True(t, dec.References("decorator"))
	assert.True(t, dec.References("osp"))
	assert.False(t, dec.References("y"), "string contents are not identifiers")
	assert.False(t, dec.References("os"))
}

func TestParse_Lookup(t *testing.T) {
	t.Parallel()

	unit := parseSample(t)
	def, ok := unit.Definition("Widget")
	require.True(t, ok)
	assert.Equal(t, KindClass, def.Kind)

	_, ok = unit.Definition("missing")
	assert.False(t, ok)
}

func TestParse_MalformedSource(t *testing.T) {
	t.Parallel()

	_, err := Parse("bad.py", []byte("def broken(:\n    pass\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.py", perr.Path)
	assert.Equal(t, 1, perr.Line)
}

func TestParse_EmptyFile(t *testing.T) {
	t.Parallel()

	unit, err := Parse("empty.py", []byte(""))
	require.NoError(t, err)
	assert.Empty(t, unit.Imports)
	assert.Empty(t, unit.Definitions)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\ndef f():\n    return os.getcwd()\n"), 0644))

	unit, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, unit.Path)
	require.Len(t, unit.Definitions, 1)
	assert.Equal(t, "f", unit.Definitions[0].Name)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrParse))
}
