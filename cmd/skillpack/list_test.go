package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/skillpack/skillpack/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []*validate.Result {
	return []*validate.Result{
		{
			Dir:         "skills/web-search",
			Verdict:     validate.VerdictPass,
			Name:        "web-search",
			Description: "Use this skill when the task requires web research",
		},
		{
			Dir:     "skills/broken",
			Verdict: validate.VerdictFail,
			Name:    "Broken",
		},
		{
			Dir:         "skills/web-scrape",
			Verdict:     validate.VerdictPass,
			Name:        "web-scrape",
			Description: "Use this skill when pages must be fetched and parsed",
		},
	}
}

func TestCollectListEntries(t *testing.T) {
	t.Run("failing packages excluded", func(t *testing.T) {
		entries, err := collectListEntries(sampleResults(), NewListConfig())
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "web-search", entries[0].Name)
		assert.Equal(t, "web-scrape", entries[1].Name)
	})

	t.Run("glob filter", func(t *testing.T) {
		config := NewListConfig()
		config.Filter = "web-s*h"
		entries, err := collectListEntries(sampleResults(), config)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "web-search", entries[0].Name)
	})

	t.Run("invalid filter", func(t *testing.T) {
		config := NewListConfig()
		config.Filter = "web-["
		_, err := collectListEntries(sampleResults(), config)
		assert.Error(t, err)
	})
}

func TestRenderListJSON(t *testing.T) {
	entries := []ListEntry{
		{Name: "web-search", Description: "desc", Path: "skills/web-search"},
	}

	var buf bytes.Buffer
	require.NoError(t, renderListJSON(&buf, entries))

	var decoded struct {
		Skills []ListEntry `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Skills, 1)
	assert.Equal(t, "web-search", decoded.Skills[0].Name)
}

func TestRenderListTable(t *testing.T) {
	entries := []ListEntry{
		{Name: "web-search", Description: "Use for research", Path: "skills/web-search"},
	}

	var buf bytes.Buffer
	renderListTable(&buf, entries, false)
	assert.Contains(t, buf.String(), "NAME")
	assert.Contains(t, buf.String(), "web-search")
	assert.NotContains(t, buf.String(), "skills/web-search")

	buf.Reset()
	renderListTable(&buf, entries, true)
	assert.Contains(t, buf.String(), "PATH")
	assert.Contains(t, buf.String(), "skills/web-search")
}
