// Package skill models skill packages: directories containing a SKILL.md
// file with YAML frontmatter describing the skill, plus optional scripts/,
// references/, and assets/ subdirectories. It provides loading of a single
// package from disk and discovery of packages under a nested development
// tree.
package skill

// SkillFileName is the required instruction file at the root of every package.
const SkillFileName = "SKILL.md"

// Well-known optional subdirectories of a skill package.
const (
	ScriptsDir    = "scripts"
	ReferencesDir = "references"
	AssetsDir     = "assets"
)

// Package represents a skill package loaded from disk. Typed fields are
// best-effort extractions from the frontmatter; Frontmatter retains the raw
// parsed mapping so validators can inspect unknown keys and malformed values.
type Package struct {
	Name          string                 // frontmatter name field
	Description   string                 // frontmatter description field
	License       string                 // optional license field
	Compatibility string                 // optional compatibility field
	Metadata      map[string]string      // optional flat metadata map
	Frontmatter   map[string]interface{} // raw frontmatter as parsed
	Dir           string                 // full path to the package directory
	Body          string                 // SKILL.md content with frontmatter stripped
	BodyLineCount int                    // line count of Body
	HasScripts    bool
	HasReferences bool
	HasAssets     bool
}

// KnownFields is the closed set of frontmatter keys this tooling
// understands. Anything else is passed through untouched.
var KnownFields = map[string]bool{
	"name":          true,
	"description":   true,
	"license":       true,
	"compatibility": true,
	"metadata":      true,
}
