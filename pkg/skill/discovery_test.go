package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkillAt(t *testing.T, root, rel string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	name := filepath.Base(dir)
	writeSkill(t, dir, `---
name: `+name+`
description: Use this skill for testing discovery
---

Content for `+name+`.
`)
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillAt(t, tmpDir, "research/search/web-search")
	writeSkillAt(t, tmpDir, "coding/formatter")
	writeSkillAt(t, tmpDir, "writing/editor")

	discovery, err := NewDiscovery(tmpDir)
	require.NoError(t, err)

	found, err := discovery.Discover()
	require.NoError(t, err)
	require.Len(t, found, 3)

	// Lexical path order is a documented contract.
	assert.Equal(t, "coding/formatter", found[0].Rel)
	assert.Equal(t, "research/search/web-search", found[1].Rel)
	assert.Equal(t, "writing/editor", found[2].Rel)
	assert.Equal(t, filepath.Join(tmpDir, "coding", "formatter"), found[0].Dir)
}

func TestDiscoverRootIsPackage(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, tmpDir, `---
name: solo
description: Use this when the root itself is the package
---

Body.
`)

	discovery, err := NewDiscovery(tmpDir)
	require.NoError(t, err)

	found, err := discovery.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ".", found[0].Rel)
}

func TestDiscoverDoesNotDescendIntoPackages(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillAt(t, tmpDir, "tools/parser")
	// A SKILL.md inside a package's references/ is part of that package,
	// not an independent one.
	writeSkillAt(t, tmpDir, "tools/parser/references/inner")

	discovery, err := NewDiscovery(tmpDir)
	require.NoError(t, err)

	found, err := discovery.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "tools/parser", found[0].Rel)
}

func TestDiscoverSkipsVCSDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillAt(t, tmpDir, "real-skill")
	writeSkillAt(t, tmpDir, ".git/fake-skill")
	writeSkillAt(t, tmpDir, "node_modules/dep-skill")

	discovery, err := NewDiscovery(tmpDir)
	require.NoError(t, err)

	found, err := discovery.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "real-skill", found[0].Rel)
}

func TestDiscoverIgnorePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillAt(t, tmpDir, "keep/skill-a")
	writeSkillAt(t, tmpDir, "drafts/skill-b")
	writeSkillAt(t, tmpDir, "archive/old/skill-c")

	discovery, err := NewDiscovery(tmpDir, WithIgnorePatterns("drafts", "archive/**"))
	require.NoError(t, err)

	found, err := discovery.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "keep/skill-a", found[0].Rel)
}

func TestDiscoverInvalidIgnorePattern(t *testing.T) {
	_, err := NewDiscovery(t.TempDir(), WithIgnorePatterns("a[")) // unterminated class
	assert.Error(t, err)
}

func TestDiscoverNonExistentRoot(t *testing.T) {
	discovery, err := NewDiscovery("/non/existent/path")
	require.NoError(t, err)

	_, err = discovery.Discover()
	assert.Error(t, err)
}

func TestDiscoverIgnoresStrayFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkillAt(t, tmpDir, "good-skill")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("docs"), 0o644))

	discovery, err := NewDiscovery(tmpDir)
	require.NoError(t, err)

	found, err := discovery.Discover()
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
