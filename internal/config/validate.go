package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateComposition(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateComposition() error {
	if c.Composition.FPS <= 0 || c.Composition.FPS > maxFPS {
		return fmt.Errorf("composition.fps must be between 1 and %d", maxFPS)
	}
	seconds := c.Composition.FallbackSeconds
	if seconds <= 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return errors.New("composition.fallback_seconds must be a positive, finite number")
	}
	return nil
}

func (c *Config) validateExport() error {
	if c.Export.CRF < 0 || c.Export.CRF > 51 {
		return errors.New("export.crf must be between 0 and 51")
	}
	if c.Export.TimeoutSeconds > maxExportTimeoutSeconds {
		return fmt.Errorf("export.timeout_seconds must not exceed %d", maxExportTimeoutSeconds)
	}
	if strings.ContainsAny(c.Export.OutputName, `/\`) {
		return errors.New("export.output_name must be a file name, not a path")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	u, err := url.Parse(topic)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic %q must be an http(s) URL", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
