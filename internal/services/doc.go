// Package services defines the error taxonomy and process-execution seam
// shared by the external tool clients (wodim, cdrdao, ffmpeg, sox).
//
// External programs are always invoked through the Executor interface so the
// burn workflow can be exercised deterministically in tests without optical
// hardware. Sentinel error markers classify failures for the orchestration
// boundary: tool errors become job failures, validation and configuration
// errors surface to the caller.
package services
