package config

import "fmt"

func validate(c *Config) error {
	if c.NavTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.FeedTimeout <= 0 {
		return fmt.Errorf("feed timeout must be > 0")
	}
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return fmt.Errorf("viewport dimensions must be > 0")
	}
	if c.ActionLimit <= 0 || c.ActionWindow <= 0 {
		return fmt.Errorf("action rate limit must be > 0")
	}
	if c.MaxScrollSteps <= 0 {
		return fmt.Errorf("max scroll steps must be > 0")
	}
	if c.PageRateRPS <= 0 {
		return fmt.Errorf("page rate must be > 0")
	}
	return nil
}
