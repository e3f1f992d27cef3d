package domain

import (
	"fmt"
	"strings"
)

type BotState string

const (
	BotUnconfigured BotState = "unconfigured"
	BotConfiguring  BotState = "configuring"
	BotRunning      BotState = "running"
	BotStopping     BotState = "stopping"
)

type BotConfig struct {
	InputToken     string
	TargetToken    string
	Slippage       string
	Allowance      float64
	OriginalSender string
}

func (c BotConfig) Validate() error {
	if c.Allowance <= 0 {
		return fmt.Errorf("%w: allowance must be positive", ErrInvalidRequest)
	}
	if strings.TrimSpace(c.InputToken) == "" || strings.TrimSpace(c.TargetToken) == "" {
		return fmt.Errorf("%w: input and target tokens are required", ErrInvalidRequest)
	}
	if c.InputToken == c.TargetToken {
		return fmt.Errorf("%w: input and target tokens must be different", ErrInvalidRequest)
	}

	return nil
}

// BotStatus is the payload of the arbitrage agent's Status handler.
type BotStatus struct {
	Enabled bool `json:"Enabled" yaml:"enabled"`
}
