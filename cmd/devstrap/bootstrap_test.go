package main

import (
	"context"
	"strings"
	"testing"

	"github.com/beaconworks/devstrap/internal/pkgmgr"
)

func TestBootstrapNamedManager(t *testing.T) {
	orig := bootstrapFunc
	defer func() { bootstrapFunc = orig }()
	var got pkgmgr.Kind
	bootstrapFunc = func(ctx context.Context, kind pkgmgr.Kind, opts pkgmgr.Options) error {
		got = kind
		return nil
	}

	out, err := runCLI(t, "bootstrap", "scoop")
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if got != pkgmgr.Scoop {
		t.Fatalf("expected scoop, got %v", got)
	}
	if !strings.Contains(out, "scoop is ready") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestBootstrapUnknownManager(t *testing.T) {
	_, err := runCLI(t, "bootstrap", "apt")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "apt") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBootstrapAllMissing(t *testing.T) {
	orig := bootstrapFunc
	defer func() { bootstrapFunc = orig }()
	var kinds []pkgmgr.Kind
	bootstrapFunc = func(ctx context.Context, kind pkgmgr.Kind, opts pkgmgr.Options) error {
		kinds = append(kinds, kind)
		return nil
	}

	// None of the manager CLIs exist on the test machine, so every
	// registered kind gets bootstrapped.
	out, err := runCLI(t, "bootstrap")
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if len(kinds) != len(pkgmgr.Kinds()) {
		t.Fatalf("expected all kinds bootstrapped, got %v (output %q)", kinds, out)
	}
}
