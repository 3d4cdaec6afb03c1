package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modjsx/internal/parser"
)

func scanFixture(t *testing.T, reserved map[string]bool) (*ScanResult, *parser.Result) {
	t.Helper()

	source, err := os.ReadFile(filepath.Join("testdata", "app.jsx"))
	require.NoError(t, err)

	res, err := parser.Parse(context.Background(), source, parser.JSX)
	require.NoError(t, err)
	t.Cleanup(res.Close)

	return Scan(res, reserved), res
}

func TestScan(t *testing.T) {
	reserved := map[string]bool{"App": true}
	scan, _ := scanFixture(t, reserved)

	candidatesByName := make(map[string]*Candidate)
	for _, c := range scan.Candidates {
		candidatesByName[c.Name] = c
	}

	t.Run("Discovery Order", func(t *testing.T) {
		var names []string
		for _, c := range scan.Candidates {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"Header", "Sidebar", "Badge", "Toggle"}, names,
			"candidates must follow declaration order, never sorted")
	})

	t.Run("Forms", func(t *testing.T) {
		assert.Equal(t, FormFunction, candidatesByName["Header"].Form)
		assert.Equal(t, FormBinding, candidatesByName["Sidebar"].Form)
		assert.Equal(t, FormBinding, candidatesByName["Badge"].Form, "anonymous function expression qualifies")
	})

	t.Run("Body Snapshots", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(candidatesByName["Header"].Body, "function Header()"))
		assert.True(t, strings.HasPrefix(candidatesByName["Sidebar"].Body, "const Sidebar"))
		assert.True(t, strings.HasSuffix(candidatesByName["Sidebar"].Body, ";"))
	})

	t.Run("Reserved Entry Name Excluded", func(t *testing.T) {
		_, found := candidatesByName["App"]
		assert.False(t, found, "App is reserved and must never be a candidate")
	})

	t.Run("Non Components Excluded", func(t *testing.T) {
		_, found := candidatesByName["formatLabel"]
		assert.False(t, found, "lowercase names are not components")
		_, found = candidatesByName["THEME"]
		assert.False(t, found, "non-function initializers are not components")
	})

	t.Run("Multi Binding Statement", func(t *testing.T) {
		toggle, found := candidatesByName["Toggle"]
		require.True(t, found)
		assert.Contains(t, toggle.Body, "toggleCount",
			"removal is whole-statement, so the sibling binding travels with the body")
		assert.True(t, toggle.Declared["toggleCount"])
	})

	t.Run("Removals", func(t *testing.T) {
		assert.Len(t, scan.Removals, 4, "one removal per matched statement")
	})

	t.Run("Existing Imports", func(t *testing.T) {
		require.Len(t, scan.ImportLines, 2)
		assert.Contains(t, scan.ImportLines[0], "react")
		assert.Contains(t, scan.ImportLines[1], "./App.css")
		assert.Greater(t, scan.ImportsEnd, uint32(0))
	})

	t.Run("Top Level Names", func(t *testing.T) {
		for _, name := range []string{"Header", "Sidebar", "formatLabel", "THEME", "toggleCount", "App"} {
			assert.True(t, scan.TopLevelNames[name], name)
		}
	})
}

func TestScan_NoReservedSet(t *testing.T) {
	// With an empty reserved set even App qualifies; exclusion is purely
	// configuration-driven, not hardcoded.
	scan, _ := scanFixture(t, map[string]bool{})

	var names []string
	for _, c := range scan.Candidates {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "App")
}

func TestScan_NoCandidates(t *testing.T) {
	source := "import React from 'react';\n\nfunction App() { return <div />; }\n\nexport default App;\n"
	res, err := parser.Parse(context.Background(), []byte(source), parser.JSX)
	require.NoError(t, err)
	defer res.Close()

	scan := Scan(res, map[string]bool{"App": true})
	assert.Empty(t, scan.Candidates)
	assert.Empty(t, scan.Removals)
	assert.Len(t, scan.ImportLines, 1)
}
