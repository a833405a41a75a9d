package game

import "fmt"

// Config holds the knobs of one game variant. Engines never share it.
type Config struct {
	QuotesPerDay  int
	AIAttribution string
	SuccessTint   string
	FailureTint   string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		QuotesPerDay:  10,
		AIAttribution: "ChatGPT",
		SuccessTint:   "#dcfce7",
		FailureTint:   "#fee2e2",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.AIAttribution == "" {
		c.AIAttribution = d.AIAttribution
	}
	if c.SuccessTint == "" {
		c.SuccessTint = d.SuccessTint
	}
	if c.FailureTint == "" {
		c.FailureTint = d.FailureTint
	}
	return c
}

func (c Config) validate() error {
	if c.QuotesPerDay <= 0 {
		return fmt.Errorf("quotes per day must be positive, got %d", c.QuotesPerDay)
	}
	return nil
}
