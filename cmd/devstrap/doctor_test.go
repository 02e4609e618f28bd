package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beaconworks/devstrap/internal/doctor"
	"github.com/beaconworks/devstrap/internal/messages"
)

func TestDoctorRunsAllChecks(t *testing.T) {
	out, err := runCLI(t, "doctor")
	if err != nil {
		t.Fatalf("doctor error: %v", err)
	}
	names := []string{
		messages.DoctorCheckNameManagers,
		messages.DoctorCheckNameElevation,
		messages.DoctorCheckNameHome,
		messages.DoctorCheckNameConfig,
		messages.DoctorCheckNameState,
		messages.DoctorCheckNamePath,
		messages.DoctorCheckNameReboot,
		messages.DoctorCheckNameWSL,
		messages.DoctorCheckNameUpdate,
	}
	for _, name := range names {
		if !strings.Contains(out, name) {
			t.Errorf("doctor output is missing the %s check: %q", name, out)
		}
	}
	if !strings.Contains(out, messages.DoctorSuccessSummary) {
		t.Errorf("expected success summary in %q", out)
	}
}

func TestPrintResultRecommendation(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, doctor.Result{
		Status:         doctor.StatusWarn,
		CheckName:      "path",
		Message:        "bin dir is not on PATH",
		Recommendation: "Add it to PATH.\nThen restart the shell.",
	})
	got := out.String()
	if !strings.Contains(got, "bin dir is not on PATH") {
		t.Fatalf("missing message in %q", got)
	}
	if !strings.Contains(got, messages.DoctorRecommendationPrefix+"Add it to PATH.") {
		t.Errorf("missing recommendation prefix in %q", got)
	}
	if !strings.Contains(got, messages.DoctorRecommendationIndent+"Then restart the shell.") {
		t.Errorf("missing continuation indent in %q", got)
	}
}
