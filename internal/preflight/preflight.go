// Package preflight verifies the environment before a burn: tool
// availability, directory access, and staging free space.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"singe/internal/config"
	"singe/internal/deps"
)

// Roughly one 80-minute disc of staged WAV audio plus headroom.
const minStagingBytes = 1 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDirectoryAccess("Lock directory", cfg.Paths.LockDir))
	results = append(results, CheckStagingSpace(cfg.Paths.StagingDir))
	results = append(results, CheckTools(cfg)...)
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return true
		}
	}
	return false
}

// CheckTools verifies the external binaries. wodim, ffmpeg, and ffprobe are
// required; cdrdao, sox, and cdparanoia improve burns but have fallbacks.
func CheckTools(cfg *config.Config) []Result {
	requirements := []deps.Requirement{
		{Name: "wodim", Command: cfg.WodimBinary(), Description: "Device detection and fallback burning"},
		{Name: "ffmpeg", Command: cfg.FFmpegBinary(), Description: "WAV staging and audio filters"},
		{Name: "ffprobe", Command: cfg.FFprobeBinary(), Description: "Durations and metadata tags"},
		{Name: "cdrdao", Command: cfg.CdrdaoBinary(), Description: "Disc probing and TOC burning", Optional: true},
		{Name: "sox", Command: cfg.SoxBinary(), Description: "Audio normalization", Optional: true},
		{Name: "cdparanoia", Command: cfg.CdparanoiaBinary(), Description: "Audio CD ripping", Optional: true},
	}

	statuses := deps.CheckBinaries(requirements)
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		detail := status.Description
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   detail,
		})
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStagingSpace verifies the staging filesystem can hold a disc's worth
// of WAV audio.
func CheckStagingSpace(path string) Result {
	const name = "Staging free space"

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}

	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%.1f GiB free)", path, float64(free)/float64(1<<30))
	if free < minStagingBytes {
		return Result{Name: name, Detail: detail + ", need at least 1 GiB"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
