package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDrive(); err != nil {
		return err
	}
	if err := c.validateBurning(); err != nil {
		return err
	}
	if err := c.validateVerify(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateDrive() error {
	if c.Drive.Speed < 0 {
		return errors.New("drive.speed must be zero (max) or positive")
	}
	return nil
}

func (c *Config) validateBurning() error {
	if c.Burning.CDMinutes != 74 && c.Burning.CDMinutes != 80 {
		return fmt.Errorf("burning.cd_minutes must be 74 or 80, got %d", c.Burning.CDMinutes)
	}
	if c.Burning.GapSeconds < 0 {
		return errors.New("burning.gap_seconds must not be negative")
	}
	if c.Burning.FadeInMS < 0 || c.Burning.FadeOutMS < 0 {
		return errors.New("burning fade durations must not be negative")
	}
	return nil
}

func (c *Config) validateVerify() error {
	switch c.Verify.Algorithm {
	case "md5", "sha1", "sha256":
		return nil
	default:
		return fmt.Errorf("verify.algorithm must be one of md5, sha1, sha256; got %q", c.Verify.Algorithm)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error; got %q", c.Logging.Level)
	}
}
