package pkgmgr

import (
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Winget, "winget"},
		{Choco, "choco"},
		{Scoop, "scoop"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestRegistryHoldsAllAdapters(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 3 {
		t.Fatalf("Kinds() = %v, want three entries", kinds)
	}
	for _, kind := range []Kind{Winget, Choco, Scoop} {
		mgr, err := New(kind, Options{})
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		if mgr.Kind() != kind {
			t.Fatalf("New(%s).Kind() = %s", kind, mgr.Kind())
		}
	}
}

func TestNewUnregistered(t *testing.T) {
	if _, err := New(Kind(42), Options{}); err == nil {
		t.Fatal("expected error for unregistered kind")
	}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("  WinGet ")
	if err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
	if kind != Winget {
		t.Fatalf("ParseKind = %s", kind)
	}
	if _, err := ParseKind("apt"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestKindNames(t *testing.T) {
	names := KindNames()
	want := []string{"winget", "choco", "scoop"}
	if len(names) != len(want) {
		t.Fatalf("KindNames = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("KindNames = %v, want %v", names, want)
		}
	}
}
