package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/beaconworks/devstrap/internal/config"
	"github.com/beaconworks/devstrap/internal/elevate"
	"github.com/beaconworks/devstrap/internal/github"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/paths"
	"github.com/beaconworks/devstrap/internal/pkgmgr"
	"github.com/beaconworks/devstrap/internal/selfupdate"
	"github.com/beaconworks/devstrap/internal/state"
	"github.com/beaconworks/devstrap/internal/updatewarn"
	"github.com/beaconworks/devstrap/internal/winreg"
	"github.com/beaconworks/devstrap/internal/wsl"
)

// Seams for tests.
var (
	detectManagersFunc = pkgmgr.DetectAll
	isAdminFunc        = elevate.IsAdmin
	parseConfigLenient = config.ParseConfigLenient
	pendingRebootFunc  = winreg.PendingReboot
	wslAvailableFunc   = wsl.Available
	wslListFunc        = wsl.List
	checkForUpdateFunc = selfupdate.Check
	runtimeGOOS        = runtime.GOOS
	environPath        = func() string { return os.Getenv("PATH") }
)

// CheckManagers reports which package managers are usable.
func CheckManagers() []Result {
	managers := detectManagersFunc(pkgmgr.Options{})
	if len(managers) == 0 {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameManagers,
			Message:        messages.DoctorNoManagers,
			Recommendation: messages.DoctorNoManagersRecommend,
		}}
	}
	results := make([]Result, 0, len(managers))
	for _, mgr := range managers {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameManagers,
			Message:   fmt.Sprintf(messages.DoctorManagerFoundFmt, mgr.Kind()),
		})
	}
	return results
}

// CheckElevation reports whether the process holds an administrator
// token. Running unelevated is normal, so this never fails.
func CheckElevation() []Result {
	if isAdminFunc() {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameElevation,
			Message:   messages.DoctorElevated,
		}}
	}
	return []Result{{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNameElevation,
		Message:        messages.DoctorNotElevated,
		Recommendation: messages.DoctorElevationRecommend,
	}}
}

// CheckHome verifies the devstrap home directory.
func CheckHome(p paths.Paths) []Result {
	info, err := os.Stat(p.Home)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Result{{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameHome,
				Message:        fmt.Sprintf(messages.DoctorHomeMissingFmt, p.Home),
				Recommendation: messages.DoctorHomeMissingRecommend,
			}}
		}
		return []Result{{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameHome,
			Message:   err.Error(),
		}}
	}
	if !info.IsDir() {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameHome,
			Message:        fmt.Sprintf(messages.DoctorHomeNotDirFmt, p.Home),
			Recommendation: messages.DoctorHomeNotDirRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameHome,
		Message:   fmt.Sprintf(messages.DoctorHomeOKFmt, p.Home),
	}}
}

// CheckConfig verifies config.toml parses and validates. When strict
// loading fails on validation only, the lenient parse keeps the check
// at WARN because devstrap still runs on defaults.
func CheckConfig(configPath string) []Result {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Result{{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameConfig,
				Message:   messages.DoctorConfigDefault,
			}}
		}
		return []Result{{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   fmt.Sprintf(messages.DoctorConfigUnreadableFmt, err),
		}}
	}

	if _, err := config.ParseConfig(data, configPath); err != nil {
		if !errors.Is(err, config.ErrConfigValidation) {
			return []Result{{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameConfig,
				Message:        fmt.Sprintf(messages.DoctorConfigUnreadableFmt, err),
				Recommendation: messages.DoctorConfigUnreadableRecommend,
			}}
		}
		if _, lenientErr := parseConfigLenient(data, configPath); lenientErr != nil {
			return []Result{{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameConfig,
				Message:        fmt.Sprintf(messages.DoctorConfigUnreadableFmt, lenientErr),
				Recommendation: messages.DoctorConfigUnreadableRecommend,
			}}
		}
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigInvalidFmt, err),
			Recommendation: messages.DoctorConfigInvalidRecommend,
		}}
	}

	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigOKFmt, configPath),
	}}
}

// CheckState verifies the state file parses.
func CheckState(store *state.Store) []Result {
	st, err := store.Load()
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameState,
			Message:        fmt.Sprintf(messages.DoctorStateCorruptFmt, err),
			Recommendation: messages.DoctorStateCorruptRecommend,
		}}
	}
	if len(st.Tools) == 0 {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameState,
			Message:   messages.DoctorStateEmptyOK,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameState,
		Message:   fmt.Sprintf(messages.DoctorStateOKFmt, len(st.Tools)),
	}}
}

// CheckPath verifies the devstrap bin directory is on PATH so shims
// resolve.
func CheckPath(p paths.Paths) []Result {
	for _, entry := range filepath.SplitList(environPath()) {
		if entry == "" {
			continue
		}
		if sameDir(entry, p.BinDir) {
			return []Result{{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNamePath,
				Message:   fmt.Sprintf(messages.DoctorPathOKFmt, p.BinDir),
			}}
		}
	}
	return []Result{{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNamePath,
		Message:        fmt.Sprintf(messages.DoctorPathMissingFmt, p.BinDir),
		Recommendation: messages.DoctorPathMissingRecommend,
	}}
}

// CheckReboot reports a pending Windows restart.
func CheckReboot() []Result {
	pending, err := pendingRebootFunc()
	if err != nil {
		if errors.Is(err, winreg.ErrUnsupported) {
			return []Result{{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameReboot,
				Message:   messages.DoctorRebootUnsupported,
			}}
		}
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameReboot,
			Message:   err.Error(),
		}}
	}
	if pending {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameReboot,
			Message:        messages.DoctorRebootPending,
			Recommendation: messages.DoctorRebootRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameReboot,
		Message:   messages.DoctorNoRebootPending,
	}}
}

// CheckWSL reports whether WSL is usable and what is installed.
func CheckWSL(ctx context.Context) []Result {
	if runtimeGOOS != "windows" {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameWSL,
			Message:   messages.DoctorWSLUnsupported,
		}}
	}
	if !wslAvailableFunc() {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameWSL,
			Message:        messages.DoctorWSLMissing,
			Recommendation: messages.DoctorWSLMissingRecommend,
		}}
	}
	distros, err := wslListFunc(ctx)
	if err != nil {
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameWSL,
			Message:   err.Error(),
		}}
	}
	if len(distros) == 0 {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameWSL,
			Message:        messages.DoctorWSLNoDistros,
			Recommendation: messages.DoctorWSLMissingRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameWSL,
		Message:   fmt.Sprintf(messages.DoctorWSLOKFmt, len(distros)),
	}}
}

// CheckUpdate reports whether a newer devstrap release exists. Network
// problems and rate limits degrade to warnings; this check never fails
// the run.
func CheckUpdate(ctx context.Context, currentVersion string) []Result {
	if reason := strings.TrimSpace(os.Getenv(updatewarn.EnvNoUpdateCheck)); reason != "" {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameUpdate,
			Message:        fmt.Sprintf(messages.DoctorUpdateSkippedFmt, updatewarn.EnvNoUpdateCheck),
			Recommendation: fmt.Sprintf(messages.DoctorUpdateSkippedRecommendFmt, updatewarn.EnvNoUpdateCheck),
		}}
	}

	result, err := checkForUpdateFunc(ctx, currentVersion)
	switch {
	case err != nil && github.IsRateLimitError(err):
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameUpdate,
			Message:   messages.DoctorUpdateRateLimited,
		}}
	case err != nil:
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameUpdate,
			Message:        fmt.Sprintf(messages.DoctorUpdateFailedFmt, err),
			Recommendation: messages.DoctorUpdateFailedRecommend,
		}}
	case result.CurrentIsDev:
		return []Result{{
			Status:    StatusWarn,
			CheckName: messages.DoctorCheckNameUpdate,
			Message:   fmt.Sprintf(messages.DoctorUpdateDevBuildFmt, result.Latest),
		}}
	case result.Outdated:
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameUpdate,
			Message:        fmt.Sprintf(messages.DoctorUpdateAvailableFmt, result.Latest, result.Current),
			Recommendation: messages.DoctorUpdateAvailableRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameUpdate,
		Message:   fmt.Sprintf(messages.DoctorUpToDateFmt, result.Current),
	}}
}

// sameDir compares path entries the way Windows does when the entries
// came from PATH: case-insensitively and ignoring a trailing separator.
func sameDir(a, b string) bool {
	clean := func(s string) string {
		s = filepath.Clean(s)
		if runtimeGOOS == "windows" {
			return strings.ToLower(s)
		}
		return s
	}
	return clean(a) == clean(b)
}
