package sqpack

import (
	"strconv"
	"strings"
)

// Category is the informational first-path-segment classification carried
// by ParsedFileName (SPEC_FULL §11.5). It is never consulted by the read
// path; it exists purely so callers/tests can introspect what kind of asset
// a path names.
type Category string

const (
	CategoryCommon     Category = "common"
	CategoryBGCommon   Category = "bgcommon"
	CategoryBG         Category = "bg"
	CategoryCut        Category = "cut"
	CategoryChara      Category = "chara"
	CategoryShader     Category = "shader"
	CategoryUI         Category = "ui"
	CategorySound      Category = "sound"
	CategoryVFX        Category = "vfx"
	CategoryUIScript   Category = "uiscript"
	CategoryEXD        Category = "exd"
	CategoryGameScript Category = "gamescript"
	CategoryMusic      Category = "music"
	CategorySqPackTest Category = "sqpacktest"
	CategoryDebug      Category = "debug"
	CategoryUnknown    Category = ""
)

// categoryNames mirrors the reference implementation's SqPackCategories
// table (main.py / exdreader.py): first path segment -> category.
var categoryNames = map[string]Category{
	"common":     CategoryCommon,
	"bgcommon":   CategoryBGCommon,
	"bg":         CategoryBG,
	"cut":        CategoryCut,
	"chara":      CategoryChara,
	"shader":     CategoryShader,
	"ui":         CategoryUI,
	"sound":      CategorySound,
	"vfx":        CategoryVFX,
	"uiscript":   CategoryUIScript,
	"exd":        CategoryEXD,
	"gamescript": CategoryGameScript,
	"music":      CategoryMusic,
	"sqpacktest": CategorySqPackTest,
	"debug":      CategoryDebug,
}

// CategoryByName looks up a path's first segment against the known category
// table. It returns CategoryUnknown for anything not recognized; an unknown
// category never causes an error, it's just not annotated.
func CategoryByName(name string) Category {
	if c, ok := categoryNames[name]; ok {
		return c
	}
	return CategoryUnknown
}

// ParsedFileName is the decomposition of a logical game path into the keys
// used to locate it: which repository it lives in, and the two index
// hashes that key its hash table entry.
type ParsedFileName struct {
	Path        string
	Category    Category
	Repo        string
	ExpansionID int
	Index       uint64
	Index2      uint32
}

// ParseFileName normalizes path (lowercase, forward slashes) and derives its
// category, repository name/expansion id, and both index hashes.
//
// repo is the second path segment if it matches "ex<digits>", otherwise
// "ffxiv"; expansion id is the captured integer, or 0 for ffxiv (spec.md
// §3/§4.5's "^ex(\d+)$" repo-id parsing rule).
func ParseFileName(path string) ParsedFileName {
	norm := normalizePath(path)
	index, index2 := HashPath(norm)

	segments := strings.Split(norm, "/")
	var category Category
	if len(segments) > 0 && segments[0] != "" {
		category = CategoryByName(segments[0])
	}

	repo, expansionID := "ffxiv", 0
	if len(segments) > 1 {
		if id, ok := parseExpansionSuffix(segments[1]); ok {
			repo, expansionID = segments[1], id
		}
	}

	return ParsedFileName{
		Path:        norm,
		Category:    category,
		Repo:        repo,
		ExpansionID: expansionID,
		Index:       index,
		Index2:      index2,
	}
}

func normalizePath(path string) string {
	path = strings.ToLower(path)
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(path, "/")
}

// parseExpansionSuffix matches "ex<digits>" and returns the captured
// integer. The digits must make up the whole remainder of the segment after
// the "ex" prefix, matching the anchored reference "^ex(\d+)$" regex.
func parseExpansionSuffix(segment string) (int, bool) {
	if !strings.HasPrefix(segment, "ex") {
		return 0, false
	}
	digits := segment[2:]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// expansionIDOf resolves a repo folder name ("ffxiv" or "ex<N>") to its
// expansion id, per spec.md §4.5/§4.6.
func expansionIDOf(repo string) int {
	if repo == "ffxiv" {
		return 0
	}
	if id, ok := parseExpansionSuffix(repo); ok {
		return id
	}
	return 0
}
