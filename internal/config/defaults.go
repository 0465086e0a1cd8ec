package config

const (
	defaultStagingDir      = "~/.local/share/singe/staging"
	defaultLogDir          = "~/.local/share/singe/logs"
	defaultDevice          = "/dev/sr0"
	defaultBurnSpeed       = 8
	defaultCDMinutes       = 80
	defaultGapSeconds      = 2
	defaultVerifyAlgorithm = "sha256"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Drive: Drive{
			Device: defaultDevice,
			Speed:  defaultBurnSpeed,
			Eject:  true,
		},
		Burning: Burning{
			CDMinutes:  defaultCDMinutes,
			GapSeconds: defaultGapSeconds,
			Normalize:  true,
		},
		Verify: Verify{
			Enabled:   true,
			Algorithm: defaultVerifyAlgorithm,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
