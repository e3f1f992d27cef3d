package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	botEventConfigure = "configure"
	botEventStart     = "start"
	botEventStop      = "stop"
	botEventStopped   = "stopped"
)

// BotController drives the arbitrage agent: Setup must settle without a
// remote error before Start is sent.
type BotController struct {
	client    *ProcessClient
	processID string
	logger    *zap.Logger

	mu      sync.Mutex
	machine *fsm.FSM
}

func NewBotController(client *ProcessClient, processID string, logger *zap.Logger) *BotController {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &BotController{client: client, processID: processID, logger: logger}
	c.machine = fsm.NewFSM(
		string(domain.BotUnconfigured),
		fsm.Events{
			{Name: botEventConfigure, Src: []string{string(domain.BotUnconfigured), string(domain.BotRunning)}, Dst: string(domain.BotConfiguring)},
			{Name: botEventStart, Src: []string{string(domain.BotConfiguring)}, Dst: string(domain.BotRunning)},
			{Name: botEventStop, Src: []string{string(domain.BotRunning)}, Dst: string(domain.BotStopping)},
			{Name: botEventStopped, Src: []string{string(domain.BotStopping)}, Dst: string(domain.BotUnconfigured)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("bot state", zap.String("from", e.Src), zap.String("to", e.Dst), zap.String("event", e.Event))
			},
		},
	)

	return c
}

func (c *BotController) State() domain.BotState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.BotState(c.machine.Current())
}

// Start configures the agent and starts it. On any failure the local state
// goes back to what it was before the call.
func (c *BotController) Start(ctx context.Context, cfg domain.BotConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	account, err := c.client.Account()
	if err != nil {
		return err
	}
	if cfg.OriginalSender == "" {
		cfg.OriginalSender = account.Address
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.machine.Current()
	if err := c.machine.Event(ctx, botEventConfigure); err != nil {
		return fmt.Errorf("configure bot from %s: %w", previous, err)
	}

	rollback := func(cause error) error {
		c.machine.SetState(previous)
		return cause
	}

	setup, err := c.client.Write(ctx, c.processID, domain.Tags{
		domain.Action(actionSetup),
		{Name: tagInputToken, Value: cfg.InputToken},
		{Name: tagTargetToken, Value: cfg.TargetToken},
		{Name: tagSlippage, Value: cfg.Slippage},
		domain.NumberTag(tagInputTokenAmount, cfg.Allowance),
		{Name: tagOriginalSender, Value: cfg.OriginalSender},
	}, nil)
	if err != nil {
		return rollback(fmt.Errorf("setup bot: %w", err))
	}
	if err := setup.Err(c.processID, actionSetup); err != nil {
		return rollback(err)
	}

	start, err := c.client.Write(ctx, c.processID, domain.Tags{domain.Action(actionStart)}, nil)
	if err != nil {
		return rollback(fmt.Errorf("start bot: %w", err))
	}
	if err := start.Err(c.processID, actionStart); err != nil {
		return rollback(err)
	}

	if err := c.machine.Event(ctx, botEventStart); err != nil {
		return rollback(fmt.Errorf("mark bot running: %w", err))
	}

	c.logger.Info("bot started", zap.String("process", c.processID), zap.String("input", cfg.InputToken), zap.String("target", cfg.TargetToken))
	return nil
}

// Stop asks the agent to stop. The message is sent whatever the local
// state says; a remote rejection leaves the state unchanged.
func (c *BotController) Stop(ctx context.Context) error {
	if _, err := c.client.Account(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.machine.Current()
	if c.machine.Can(botEventStop) {
		if err := c.machine.Event(ctx, botEventStop); err != nil {
			return fmt.Errorf("stop bot from %s: %w", previous, err)
		}
	}

	outcome, err := c.client.Write(ctx, c.processID, domain.Tags{domain.Action(actionStop)}, nil)
	if err != nil {
		c.machine.SetState(previous)
		return fmt.Errorf("stop bot: %w", err)
	}
	if err := outcome.Err(c.processID, actionStop); err != nil {
		c.machine.SetState(previous)
		return err
	}

	if c.machine.Can(botEventStopped) {
		if err := c.machine.Event(ctx, botEventStopped); err != nil {
			return fmt.Errorf("mark bot stopped: %w", err)
		}
	} else {
		c.machine.SetState(string(domain.BotUnconfigured))
	}

	c.logger.Info("bot stopped", zap.String("process", c.processID))
	return nil
}

// Sync aligns the local state with the agent's Status handler.
func (c *BotController) Sync(ctx context.Context) (domain.BotStatus, error) {
	var status domain.BotStatus
	if err := c.client.ReadInto(ctx, c.processID, domain.Tags{domain.Action(actionStatus)}, &status); err != nil {
		return domain.BotStatus{}, fmt.Errorf("read bot status: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if status.Enabled {
		c.machine.SetState(string(domain.BotRunning))
	} else {
		c.machine.SetState(string(domain.BotUnconfigured))
	}

	return status, nil
}
