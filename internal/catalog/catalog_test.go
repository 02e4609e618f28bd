package catalog

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestLookup_KnownTool(t *testing.T) {
	tool, err := Lookup("git")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if tool.Name != "Git" {
		t.Fatalf("name = %q, want %q", tool.Name, "Git")
	}
	if tool.WingetID != "Git.Git" {
		t.Fatalf("winget ID = %q, want %q", tool.WingetID, "Git.Git")
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	tool, err := Lookup("  NodeJS ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if tool.ID != "nodejs" {
		t.Fatalf("ID = %q, want %q", tool.ID, "nodejs")
	}
}

func TestLookup_UnknownTool(t *testing.T) {
	_, err := Lookup("emacs")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrNotInCatalog) {
		t.Fatalf("error %v does not wrap ErrNotInCatalog", err)
	}
	if !strings.Contains(err.Error(), "emacs") {
		t.Fatalf("error %v does not name the tool", err)
	}
}

func TestIDs_SortedAndComplete(t *testing.T) {
	ids := IDs()
	if !sort.StringsAreSorted(ids) {
		t.Fatalf("IDs not sorted: %v", ids)
	}
	if len(ids) != len(builtin) {
		t.Fatalf("len(IDs) = %d, want %d", len(ids), len(builtin))
	}
	for _, want := range []string{"git", "nodejs", "python", "postgresql", "xampp", "gcloud", "firebase-cli", "awscli", "vscode", "chrome", "docker-desktop", "7zip"} {
		if !containsString(ids, want) {
			t.Fatalf("IDs missing %q", want)
		}
	}
}

func TestCategories(t *testing.T) {
	categories := Categories()
	if !sort.StringsAreSorted(categories) {
		t.Fatalf("Categories not sorted: %v", categories)
	}
	for _, want := range []string{CategoryVCS, CategoryRuntimes, CategoryCloud, CategoryBrowsers} {
		if !containsString(categories, want) {
			t.Fatalf("Categories missing %q", want)
		}
	}
}

func TestInCategory(t *testing.T) {
	cloud := InCategory(CategoryCloud)
	if len(cloud) != 3 {
		t.Fatalf("len(cloud) = %d, want 3", len(cloud))
	}
	for _, tool := range cloud {
		if tool.Category != CategoryCloud {
			t.Fatalf("tool %q category = %q", tool.ID, tool.Category)
		}
	}
}

func TestManagerID(t *testing.T) {
	tool, err := Lookup("git")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := tool.ManagerID("winget"); got != "Git.Git" {
		t.Fatalf("ManagerID(winget) = %q", got)
	}
	if got := tool.ManagerID("choco"); got != "git" {
		t.Fatalf("ManagerID(choco) = %q", got)
	}
	if got := tool.ManagerID("apt"); got != "" {
		t.Fatalf("ManagerID(apt) = %q, want empty", got)
	}
}

func TestResolveURL(t *testing.T) {
	download := Download{URL: "https://nodejs.org/dist/v{version}/node-v{version}-{arch}.msi"}
	got := download.ResolveURL("20.11.0", "x64")
	want := "https://nodejs.org/dist/v20.11.0/node-v20.11.0-x64.msi"
	if got != want {
		t.Fatalf("ResolveURL = %q, want %q", got, want)
	}
}

func TestBuiltin_ReturnsCopy(t *testing.T) {
	first := Builtin()
	first[0].ID = "mutated"
	second := Builtin()
	if second[0].ID == "mutated" {
		t.Fatal("Builtin returned shared backing array")
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
