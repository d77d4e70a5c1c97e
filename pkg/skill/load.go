package skill

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// ErrMissingFrontmatter indicates a SKILL.md without a leading frontmatter block.
var ErrMissingFrontmatter = errors.New("missing frontmatter")

// Load reads and parses the package rooted at dir. It returns an error for
// conditions that make the package unreadable (missing SKILL.md, frontmatter
// that fails to parse); field-level problems are left to validators, which
// inspect the returned Frontmatter map.
func Load(dir string) (*Package, error) {
	skillPath := filepath.Join(dir, SkillFileName)
	content, err := os.ReadFile(skillPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", SkillFileName)
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	rawFrontmatter, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "malformed frontmatter")
	}
	if rawFrontmatter == nil {
		return nil, ErrMissingFrontmatter
	}

	// goldmark-meta decodes with yaml.v2, which produces
	// map[interface{}]interface{} for nested mappings. Normalize so
	// validators can assert on string-keyed maps.
	frontmatter := normalizeMap(rawFrontmatter)

	body := extractBody(string(content))

	pkg := &Package{
		Frontmatter:   frontmatter,
		Dir:           dir,
		Body:          body,
		BodyLineCount: countLines(body),
		HasScripts:    dirExists(filepath.Join(dir, ScriptsDir)),
		HasReferences: dirExists(filepath.Join(dir, ReferencesDir)),
		HasAssets:     dirExists(filepath.Join(dir, AssetsDir)),
	}

	pkg.Name, _ = frontmatter["name"].(string)
	pkg.Description, _ = frontmatter["description"].(string)
	pkg.License, _ = frontmatter["license"].(string)
	pkg.Compatibility, _ = frontmatter["compatibility"].(string)

	if rawMeta, ok := frontmatter["metadata"].(map[string]interface{}); ok {
		pkg.Metadata = flattenMetadata(rawMeta)
	}

	return pkg, nil
}

// flattenMetadata converts scalar values to strings and drops nested
// structures. Validators report nesting separately; the loaded package only
// carries the usable flat portion.
func flattenMetadata(raw map[string]interface{}) map[string]string {
	flat := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			continue
		default:
			flat[k] = fmt.Sprintf("%v", v)
		}
	}
	return flat
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			out[fmt.Sprintf("%v", k)] = normalizeValue(inner)
		}
		return out
	case map[string]interface{}:
		return normalizeMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}

// extractBody removes the YAML frontmatter block and returns the
// instructional body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}

func countLines(body string) int {
	trimmed := strings.TrimRight(body, "\n")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "\n") + 1
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
