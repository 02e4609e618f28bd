package winreg

import (
	"errors"
	"runtime"
	"testing"
)

var sampleProducts = []Product{
	{DisplayName: "Git", DisplayVersion: "2.43.0", Publisher: "The Git Development Community"},
	{DisplayName: "Microsoft Visual Studio Code (User)", DisplayVersion: "1.86.0"},
	{DisplayName: "Node.js", DisplayVersion: "20.11.0"},
	{DisplayName: "PostgreSQL 16", DisplayVersion: "16.1-1"},
}

func TestMatchProducts_CaseInsensitiveContains(t *testing.T) {
	got := MatchProducts(sampleProducts, []string{"visual studio code"})
	if len(got) != 1 {
		t.Fatalf("matches = %v", got)
	}
	if got[0].DisplayVersion != "1.86.0" {
		t.Fatalf("version = %q", got[0].DisplayVersion)
	}
}

func TestMatchProducts_MultipleFragments(t *testing.T) {
	got := MatchProducts(sampleProducts, []string{"PostgreSQL", "Node.js"})
	if len(got) != 2 {
		t.Fatalf("matches = %v", got)
	}
	if got[0].DisplayName != "Node.js" {
		t.Fatalf("matches not sorted: %v", got)
	}
}

func TestMatchProducts_NoFragments(t *testing.T) {
	if got := MatchProducts(sampleProducts, nil); len(got) != 0 {
		t.Fatalf("matches = %v", got)
	}
	if got := MatchProducts(sampleProducts, []string{""}); len(got) != 0 {
		t.Fatalf("empty fragment matched: %v", got)
	}
}

func TestMatchProducts_MatchesOncePerProduct(t *testing.T) {
	got := MatchProducts(sampleProducts, []string{"Git", "git"})
	if len(got) != 1 {
		t.Fatalf("matches = %v", got)
	}
}

func TestInstalledProducts_UnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("registry is available on Windows")
	}
	_, err := InstalledProducts()
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("error = %v, want ErrUnsupported", err)
	}
	if _, err := ManagedInstalls(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ManagedInstalls error = %v, want ErrUnsupported", err)
	}
	if err := SetManagedInstall("git", "Git", "2.43.0"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("SetManagedInstall error = %v, want ErrUnsupported", err)
	}
}

func TestFindProducts_UnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("registry is available on Windows")
	}
	_, err := FindProducts([]string{"Git"})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("error = %v, want ErrUnsupported", err)
	}
}
