package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"go.uber.org/zap"
)

// ProcessClient reads from and writes to remote processes on behalf of the
// connected wallet. Reads are never cached and nothing is retried.
type ProcessClient struct {
	session   ports.WalletSession
	transport ports.ProcessTransport
	logger    *zap.Logger
	metrics   *Metrics
}

func NewProcessClient(session ports.WalletSession, transport ports.ProcessTransport, logger *zap.Logger, metrics *Metrics) *ProcessClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ProcessClient{
		session:   session,
		transport: transport,
		logger:    logger,
		metrics:   metrics,
	}
}

// Read evaluates tags against processID without changing remote state and
// returns the data of the first message as JSON. No message yields an
// empty Value and no error; a message whose data is blank or not JSON is
// ErrMalformedPayload.
func (c *ProcessClient) Read(ctx context.Context, processID string, tags domain.Tags) (value domain.Value, err error) {
	started := time.Now()
	defer func() { c.metrics.observe("read", tags.Action(), started, err) }()

	req := domain.ReadRequest{ProcessID: processID, Tags: tags.Clone()}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := c.transport.DryRun(ctx, req)
	if err != nil {
		return nil, remoteUnavailable(err)
	}

	if len(result.Messages) == 0 {
		if strings.TrimSpace(result.Error) != "" {
			return nil, &domain.RemoteRejectedError{ProcessID: processID, Action: tags.Action(), Message: result.Error}
		}
		c.logger.Debug("read returned no message", zap.String("process", processID), zap.String("action", tags.Action()))
		return nil, nil
	}

	data := strings.TrimSpace(result.Messages[0].Data)
	if data == "" {
		return nil, fmt.Errorf("%w: %s from %s has no data", domain.ErrMalformedPayload, tags.Action(), processID)
	}
	if !json.Valid([]byte(data)) {
		return nil, fmt.Errorf("%w: %s from %s is not JSON", domain.ErrMalformedPayload, tags.Action(), processID)
	}

	return domain.Value(data), nil
}

// ReadInto reads and decodes into out. An empty result leaves out untouched.
func (c *ProcessClient) ReadInto(ctx context.Context, processID string, tags domain.Tags, out any) error {
	value, err := c.Read(ctx, processID, tags)
	if err != nil {
		return err
	}

	return value.Decode(out)
}

// Write signs and submits a message, then waits for the process to settle
// it. A remote error is reported in the outcome, not as err. Every call is
// a new submission.
func (c *ProcessClient) Write(ctx context.Context, processID string, tags domain.Tags, data []byte) (outcome domain.WriteOutcome, err error) {
	started := time.Now()
	defer func() {
		observed := err
		if observed == nil && outcome.Failed() {
			observed = outcome.Err(processID, tags.Action())
		}
		c.metrics.observe("write", tags.Action(), started, observed)
	}()

	req := domain.WriteRequest{ProcessID: processID, Tags: tags.Clone(), Data: data}
	if err := req.Validate(); err != nil {
		return domain.WriteOutcome{}, err
	}

	if _, connected := c.session.CurrentAccount(); !connected {
		return domain.WriteOutcome{}, domain.ErrWalletNotConnected
	}

	envelope, err := c.session.Sign(ctx, req)
	if err != nil {
		return domain.WriteOutcome{}, fmt.Errorf("sign %s: %w", describe(tags), err)
	}

	messageID, err := c.transport.Submit(ctx, envelope)
	if err != nil {
		return domain.WriteOutcome{}, remoteUnavailable(err)
	}

	c.logger.Debug("write submitted",
		zap.String("process", processID),
		zap.String("message", messageID),
		zap.String("action", tags.Action()),
	)

	outcome, err = c.transport.Result(ctx, processID, messageID)
	if err != nil {
		return domain.WriteOutcome{}, remoteUnavailable(err)
	}
	if outcome.MessageID == "" {
		outcome.MessageID = messageID
	}

	if outcome.Failed() {
		c.logger.Info("write settled with remote error",
			zap.String("process", processID),
			zap.String("action", tags.Action()),
			zap.String("error", outcome.Error),
		)
	}

	return outcome, nil
}

// Spawn provisions a new process owned by the connected wallet.
func (c *ProcessClient) Spawn(ctx context.Context, name string, tags domain.Tags) (processID string, err error) {
	started := time.Now()
	defer func() { c.metrics.observe("spawn", "", started, err) }()

	if _, connected := c.session.CurrentAccount(); !connected {
		return "", domain.ErrWalletNotConnected
	}

	processID, err = c.session.Provision(ctx, name, tags.Clone())
	if err != nil {
		return "", fmt.Errorf("provision process: %w", err)
	}

	return processID, nil
}

// Account returns the connected account or ErrWalletNotConnected.
func (c *ProcessClient) Account() (domain.Account, error) {
	account, connected := c.session.CurrentAccount()
	if !connected {
		return domain.Account{}, domain.ErrWalletNotConnected
	}

	return account, nil
}

func remoteUnavailable(err error) error {
	if errors.Is(err, domain.ErrRemoteUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
}

func describe(tags domain.Tags) string {
	if action := tags.Action(); action != "" {
		return action
	}

	return "message"
}
