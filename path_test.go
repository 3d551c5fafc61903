package sqpack

import "testing"

func TestParseFileName(t *testing.T) {
	for _, test := range []struct {
		desc         string
		path         string
		wantCategory Category
		wantRepo     string
		wantExpID    int
	}{
		{
			desc:         "base game exd path",
			path:         "ExD/Root.EXL",
			wantCategory: CategoryEXD,
			wantRepo:     "ffxiv",
			wantExpID:    0,
		},
		{
			desc:         "expansion bg path",
			path:         "bg/ex3/foo.bar",
			wantCategory: CategoryBG,
			wantRepo:     "ex3",
			wantExpID:    3,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			got := ParseFileName(test.path)
			if got.Category != test.wantCategory {
				t.Errorf("ParseFileName(%q).Category = %q, want %q", test.path, got.Category, test.wantCategory)
			}
			if got.Repo != test.wantRepo {
				t.Errorf("ParseFileName(%q).Repo = %q, want %q", test.path, got.Repo, test.wantRepo)
			}
			if got.ExpansionID != test.wantExpID {
				t.Errorf("ParseFileName(%q).ExpansionID = %d, want %d", test.path, got.ExpansionID, test.wantExpID)
			}

			wantIndex, wantIndex2 := HashPath(got.Path)
			if got.Index != wantIndex || got.Index2 != wantIndex2 {
				t.Errorf("ParseFileName(%q) hashes = (0x%016x, 0x%08x), want (0x%016x, 0x%08x)",
					test.path, got.Index, got.Index2, wantIndex, wantIndex2)
			}
		})
	}
}

func TestExpansionIDParsing(t *testing.T) {
	for _, test := range []struct {
		repo   string
		wantID int
	}{
		{repo: "ffxiv", wantID: 0},
		{repo: "ex1", wantID: 1},
		{repo: "ex12", wantID: 12},
	} {
		t.Run(test.repo, func(t *testing.T) {
			if got := expansionIDOf(test.repo); got != test.wantID {
				t.Errorf("expansionIDOf(%q) = %d, want %d", test.repo, got, test.wantID)
			}
		})
	}
}

func TestCategoryByNameUnknown(t *testing.T) {
	if got := CategoryByName("notarealcategory"); got != CategoryUnknown {
		t.Errorf("CategoryByName(unknown) = %q, want CategoryUnknown", got)
	}
}
