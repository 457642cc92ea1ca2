package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Sleep.validate(); err != nil {
		return fmt.Errorf("sleep: %w", err)
	}

	return nil
}

func (s SleepConfig) validate() error {
	if s.MinMinutes <= 0 {
		return fmt.Errorf("min_minutes must be > 0 (got %d)", s.MinMinutes)
	}
	if s.MaxMinutes <= s.MinMinutes {
		return fmt.Errorf("max_minutes must be > min_minutes (got %d <= %d)", s.MaxMinutes, s.MinMinutes)
	}
	if s.HardMaxMinutes < s.MaxMinutes {
		return fmt.Errorf("hard_max_minutes must be >= max_minutes (got %d < %d)", s.HardMaxMinutes, s.MaxMinutes)
	}
	return nil
}
