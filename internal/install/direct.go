package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beaconworks/devstrap/internal/catalog"
	"github.com/beaconworks/devstrap/internal/envfile"
	"github.com/beaconworks/devstrap/internal/extract"
	"github.com/beaconworks/devstrap/internal/fsutil"
	"github.com/beaconworks/devstrap/internal/messages"
	"github.com/beaconworks/devstrap/internal/profile"
	"github.com/beaconworks/devstrap/internal/report"
	"github.com/beaconworks/devstrap/internal/scripts"
	"github.com/beaconworks/devstrap/internal/shims"
	"github.com/beaconworks/devstrap/internal/state"
)

// msiexec and dism report 3010 when the install succeeded but the
// machine needs a restart.
const exitRebootRequired = 3010

// artifact pairs a resolved download URL with the version it carries.
type artifact struct {
	url     string
	version string
}

func (inst *Installer) installDirect(ctx context.Context, sel profile.Selection) report.Outcome {
	tool := sel.Tool

	resolved, err := inst.resolveArtifact(ctx, tool, sel.Version)
	if err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}
	local, err := inst.fetcher.Fetch(ctx, resolved.url, tool.Download.SHA256)
	if err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}

	note, installedPath, err := inst.applyArtifact(ctx, tool, local)
	if err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}
	if err := inst.applyEnv(tool); err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}

	version := resolved.version
	if version == "" && tool.CheckCommand != "" {
		version, _ = commandVersionFunc(ctx, tool)
	}
	if err := inst.recordInstall(tool, version, state.MethodDownload, installedPath); err != nil {
		return report.Failed(tool.ID, actionInstall, err)
	}
	inst.mirrorManagedInstall(tool, version)

	detail := detailVia(version, state.MethodDownload)
	if note != "" {
		detail += " (" + note + ")"
	}
	return report.OK(tool.ID, actionInstall, detail)
}

// resolveArtifact turns a tool's download spec into a concrete URL:
// GitHub release asset when a repo is named, URL template otherwise.
func (inst *Installer) resolveArtifact(ctx context.Context, tool catalog.Tool, version string) (artifact, error) {
	dl := tool.Download
	if dl.GitHubRepo != "" {
		release, err := inst.lookupRelease(ctx, dl.GitHubRepo, version)
		if err != nil {
			return artifact{}, fmt.Errorf(messages.InstallResolveDownloadErrFmt, tool.ID, err)
		}
		asset, ok := githubMatchAsset(release.Assets, dl.AssetPattern)
		if !ok {
			return artifact{}, fmt.Errorf(messages.InstallResolveDownloadErrFmt, tool.ID,
				fmt.Errorf(messages.GithubNoMatchingAssetFmt, release.TagName, dl.AssetPattern))
		}
		return artifact{url: asset.BrowserDownloadURL, version: release.Version()}, nil
	}

	if version == "" && strings.Contains(dl.URL, "{version}") {
		return artifact{}, fmt.Errorf(messages.InstallVersionRequiredFmt, tool.ID)
	}
	return artifact{url: dl.ResolveURL(version, archName()), version: version}, nil
}

func (inst *Installer) lookupRelease(ctx context.Context, repo string, version string) (release githubRelease, err error) {
	if version == "" {
		return latestReleaseFunc(ctx, repo)
	}
	return releaseByTagFunc(ctx, repo, version)
}

func (inst *Installer) applyArtifact(ctx context.Context, tool catalog.Tool, local string) (note string, installedPath string, err error) {
	switch tool.Download.Kind {
	case catalog.InstallerMSI:
		note, err = inst.runMSI(ctx, tool, local)
		return note, "", err
	case catalog.InstallerEXE:
		note, err = inst.runEXE(ctx, tool, local)
		return note, "", err
	case catalog.InstallerZip:
		return inst.unpackArchive(ctx, tool, local)
	case catalog.InstallerAppx:
		return "", "", inst.runAppx(ctx, tool, local)
	case catalog.InstallerBin:
		return inst.placeBinary(ctx, tool, local)
	default:
		return "", "", fmt.Errorf(messages.InstallUnknownKindFmt, string(tool.Download.Kind), tool.ID)
	}
}

func (inst *Installer) runMSI(ctx context.Context, tool catalog.Tool, local string) (string, error) {
	args := []string{"/i", local}
	if inst.silent {
		args = append(args, "/qn", "/norestart")
	}
	return installerResult(tool, runFunc(ctx, inst.stdout, inst.stderr, "msiexec", args...))
}

func (inst *Installer) runEXE(ctx context.Context, tool catalog.Tool, local string) (string, error) {
	var args []string
	if inst.silent {
		args = tool.Download.SilentArgs
	}
	return installerResult(tool, runFunc(ctx, inst.stdout, inst.stderr, local, args...))
}

// installerResult folds the reboot-required exit code into a note
// instead of an error.
func installerResult(tool catalog.Tool, err error) (string, error) {
	if err == nil {
		return "", nil
	}
	if code, ok := exitCodeFunc(err); ok && code == exitRebootRequired {
		return messages.InstallRebootRequired, nil
	}
	return "", fmt.Errorf(messages.InstallRunInstallerErrFmt, tool.ID, err)
}

func (inst *Installer) unpackArchive(ctx context.Context, tool catalog.Tool, local string) (string, string, error) {
	destDir := filepath.Join(inst.paths.ToolsDir, tool.ID)
	root, err := extract.Extract(local, destDir)
	if err != nil {
		return "", "", fmt.Errorf(messages.InstallUnpackErrFmt, tool.ID, err)
	}
	target, ok := findToolBinary(root, tool.ID)
	if !ok {
		return fmt.Sprintf(messages.InstallUnpackedToFmt, root), root, nil
	}
	if err := shims.Write(shims.RealSystem{}, inst.paths.BinDir, shims.Shim{Name: tool.ID, Target: target}); err != nil {
		return "", "", err
	}
	inst.maybeShortcut(ctx, tool, target)
	return "", target, nil
}

func (inst *Installer) runAppx(ctx context.Context, tool catalog.Tool, local string) error {
	script, err := scripts.RenderAppxInstall(local)
	if err != nil {
		return err
	}
	if err := runPowerShellFunc(ctx, inst.stdout, inst.stderr, script); err != nil {
		return fmt.Errorf(messages.InstallRunInstallerErrFmt, tool.ID, err)
	}
	return nil
}

func (inst *Installer) placeBinary(ctx context.Context, tool catalog.Tool, local string) (string, string, error) {
	destDir := filepath.Join(inst.paths.ToolsDir, tool.ID)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", "", fmt.Errorf(messages.InstallPlaceBinaryErrFmt, tool.ID, err)
	}
	target := filepath.Join(destDir, filepath.Base(local))
	if err := copyFile(local, target); err != nil {
		return "", "", fmt.Errorf(messages.InstallPlaceBinaryErrFmt, tool.ID, err)
	}
	if err := shims.Write(shims.RealSystem{}, inst.paths.BinDir, shims.Shim{Name: tool.ID, Target: target}); err != nil {
		return "", "", err
	}
	inst.maybeShortcut(ctx, tool, target)
	return "", target, nil
}

// findToolBinary looks for the conventional executable inside an
// unpacked tree.
func findToolBinary(root string, id string) (string, bool) {
	candidates := []string{
		filepath.Join(root, id+".exe"),
		filepath.Join(root, "bin", id+".exe"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func (inst *Installer) maybeShortcut(ctx context.Context, tool catalog.Tool, target string) {
	if !inst.cfg.ShortcutsEnabled() {
		return
	}
	script, err := scripts.RenderShortcut(tool.Name, target)
	if err == nil {
		err = runPowerShellFunc(ctx, inst.stdout, inst.stderr, script)
	}
	if err != nil {
		_, _ = fmt.Fprintf(inst.stderr, messages.InstallShortcutFailedFmt+"\n", tool.ID, err)
	}
}

// applyEnv patches the tool's exports into the env file, preserving
// everything already there.
func (inst *Installer) applyEnv(tool catalog.Tool) error {
	if len(tool.Env) == 0 {
		return nil
	}
	content := ""
	data, err := os.ReadFile(inst.paths.EnvPath)
	if err == nil {
		content = string(data)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.InstallEnvErrFmt, tool.ID, err)
	}
	patched := envfile.Patch(content, tool.Env)
	if err := fsutil.WriteFileAtomic(inst.paths.EnvPath, []byte(patched), 0o644); err != nil {
		return fmt.Errorf(messages.InstallEnvErrFmt, tool.ID, err)
	}
	return nil
}

// removeEnv drops the tool's exports from the env file.
func (inst *Installer) removeEnv(tool catalog.Tool) error {
	if len(tool.Env) == 0 {
		return nil
	}
	data, err := os.ReadFile(inst.paths.EnvPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(messages.InstallEnvErrFmt, tool.ID, err)
	}
	keys := make([]string, 0, len(tool.Env))
	for key := range tool.Env {
		keys = append(keys, key)
	}
	stripped := envfile.Remove(string(data), keys)
	if err := fsutil.WriteFileAtomic(inst.paths.EnvPath, []byte(stripped), 0o644); err != nil {
		return fmt.Errorf(messages.InstallEnvErrFmt, tool.ID, err)
	}
	return nil
}

// mirrorManagedInstall keeps the informational registry mirror in step.
// Mirror failures never fail the install.
func (inst *Installer) mirrorManagedInstall(tool catalog.Tool, version string) {
	_ = setManagedInstallFunc(tool.ID, tool.Name, version)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
