package inspect

import (
	"context"
	"errors"
	"testing"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/state"
	"github.com/beaconworks/devstrap/internal/winreg"
)

func stubSeams(t *testing.T, exists bool, output string, outputErr error, products []winreg.Product, productsErr error, service bool, serviceErr error) {
	t.Helper()
	oldExists, oldOutput := commandExistsFunc, commandOutputFunc
	oldProducts, oldService := findProductsFunc, serviceExistsFunc
	t.Cleanup(func() {
		commandExistsFunc, commandOutputFunc = oldExists, oldOutput
		findProductsFunc, serviceExistsFunc = oldProducts, oldService
	})
	commandExistsFunc = func(string) bool { return exists }
	commandOutputFunc = func(context.Context, string, ...string) (string, error) { return output, outputErr }
	findProductsFunc = func([]string) ([]winreg.Product, error) { return products, productsErr }
	serviceExistsFunc = func(string) (bool, error) { return service, serviceErr }
}

func TestDetect_StateRecordWins(t *testing.T) {
	stubSeams(t, true, "git version 9.9.9", nil, nil, nil, false, nil)

	st := state.State{}
	st.Set("git", state.Record{Version: "2.43.0", Method: state.MethodWinget})
	tool := catalog.Tool{ID: "git", CheckCommand: "git", VersionArgs: []string{"--version"}}

	got := Detect(context.Background(), tool, st)
	if !got.Installed() {
		t.Fatalf("detection = %+v", got)
	}
	if got.Source != SourceState {
		t.Fatalf("source = %q, want %q", got.Source, SourceState)
	}
	if got.Version != "2.43.0" {
		t.Fatalf("version = %q, want state version", got.Version)
	}
}

func TestDetect_CommandProbe(t *testing.T) {
	stubSeams(t, true, "git version 2.43.0.windows.1", nil, nil, nil, false, nil)

	tool := catalog.Tool{ID: "git", CheckCommand: "git", VersionArgs: []string{"--version"}}
	got := Detect(context.Background(), tool, state.State{})
	if got.Source != SourceCommand {
		t.Fatalf("source = %q, want %q", got.Source, SourceCommand)
	}
	if got.Version != "2.43.0" {
		t.Fatalf("version = %q, want 2.43.0", got.Version)
	}
}

func TestDetect_CommandFoundButVersionFails(t *testing.T) {
	stubSeams(t, true, "", errors.New("boom"), nil, nil, false, nil)

	tool := catalog.Tool{ID: "git", CheckCommand: "git", VersionArgs: []string{"--version"}}
	got := Detect(context.Background(), tool, state.State{})
	if !got.Installed() || got.Source != SourceCommand {
		t.Fatalf("detection = %+v", got)
	}
	if got.Version != "" {
		t.Fatalf("version = %q, want empty", got.Version)
	}
}

func TestDetect_RegistryProbe(t *testing.T) {
	products := []winreg.Product{{DisplayName: "Mozilla Firefox", DisplayVersion: "122.0.1"}}
	stubSeams(t, false, "", nil, products, nil, false, nil)

	tool := catalog.Tool{ID: "firefox", RegistryNames: []string{"Mozilla Firefox"}}
	got := Detect(context.Background(), tool, state.State{})
	if got.Source != SourceRegistry {
		t.Fatalf("source = %q, want %q", got.Source, SourceRegistry)
	}
	if got.Version != "122.0.1" {
		t.Fatalf("version = %q", got.Version)
	}
}

func TestDetect_RegistryErrorFallsThroughToService(t *testing.T) {
	stubSeams(t, false, "", nil, nil, winreg.ErrUnsupported, true, nil)

	tool := catalog.Tool{ID: "postgresql", RegistryNames: []string{"PostgreSQL"}, ServiceName: "postgresql-x64-16"}
	got := Detect(context.Background(), tool, state.State{})
	if got.Source != SourceService {
		t.Fatalf("source = %q, want %q", got.Source, SourceService)
	}
	if got.Version != "" {
		t.Fatalf("version = %q, want empty", got.Version)
	}
}

func TestDetect_NothingFound(t *testing.T) {
	stubSeams(t, false, "", nil, nil, nil, false, nil)

	tool := catalog.Tool{ID: "postman", CheckCommand: "postman", RegistryNames: []string{"Postman"}, ServiceName: "postman-svc"}
	got := Detect(context.Background(), tool, state.State{})
	if got.Status != StatusNotInstalled {
		t.Fatalf("status = %v, want %v", got.Status, StatusNotInstalled)
	}
	if got.Installed() {
		t.Fatal("Installed() = true")
	}
}

func TestCommandVersion_PatternCaptureGroup(t *testing.T) {
	stubSeams(t, true, "Product banner build 7.1.2-beta", nil, nil, nil, false, nil)

	tool := catalog.Tool{ID: "x", CheckCommand: "x", VersionPattern: `build (\d+\.\d+\.\d+)`}
	version, err := CommandVersion(context.Background(), tool)
	if err != nil {
		t.Fatalf("CommandVersion: %v", err)
	}
	if version != "7.1.2" {
		t.Fatalf("version = %q, want 7.1.2", version)
	}
}

func TestCommandVersion_PatternNoMatch(t *testing.T) {
	stubSeams(t, true, "no digits here", nil, nil, nil, false, nil)

	tool := catalog.Tool{ID: "x", CheckCommand: "x", VersionPattern: `v(\d+)`}
	version, err := CommandVersion(context.Background(), tool)
	if err != nil {
		t.Fatalf("CommandVersion: %v", err)
	}
	if version != "" {
		t.Fatalf("version = %q, want empty", version)
	}
}

func TestExtractVersion_RegistryVersionWithSuffix(t *testing.T) {
	got := extractVersion(catalog.Tool{}, "16.1-1")
	if got != "16.1" {
		t.Fatalf("version = %q, want 16.1", got)
	}
}

func TestStatusString(t *testing.T) {
	if StatusInstalled.String() != "installed" {
		t.Fatalf("StatusInstalled = %q", StatusInstalled.String())
	}
	if StatusNotInstalled.String() != "not installed" {
		t.Fatalf("StatusNotInstalled = %q", StatusNotInstalled.String())
	}
	if StatusUnknown.String() != "unknown" {
		t.Fatalf("StatusUnknown = %q", StatusUnknown.String())
	}
}
