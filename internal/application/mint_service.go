package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/dumdum-cli/internal/domain"
	"go.uber.org/zap"
)

const (
	MaxMintAmount = 100

	defaultMintMessage = "Tokens minted successfully"
)

type MintResult struct {
	Recipient string
	Amount    float64
	Message   string
	Outcome   domain.WriteOutcome
}

// MintService asks the faucet to credit test tokens to the user's process.
type MintService struct {
	client    *ProcessClient
	processes Processes
	logger    *zap.Logger
}

func NewMintService(client *ProcessClient, processes Processes, logger *zap.Logger) *MintService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MintService{client: client, processes: processes, logger: logger}
}

func (s *MintService) Mint(ctx context.Context, amount float64) (MintResult, error) {
	if amount <= 0 || amount > MaxMintAmount {
		return MintResult{}, fmt.Errorf("%w: amount must be greater than 0 and at most %d", domain.ErrInvalidRequest, MaxMintAmount)
	}

	account, err := s.client.Account()
	if err != nil {
		return MintResult{}, err
	}

	user, found, err := lookupUser(ctx, s.client, s.processes.Main, account.Address)
	if err != nil {
		return MintResult{}, err
	}
	if !found || user.ProcessID == "" {
		return MintResult{}, fmt.Errorf("%w: wallet %s is not onboarded", domain.ErrInvalidRequest, account.Address)
	}

	outcome, err := s.client.Write(ctx, s.processes.Faucet, domain.Tags{
		domain.Action(actionRequestTokens),
		domain.NumberTag(tagQuantity, amount),
		{Name: tagRecipient, Value: user.ProcessID},
	}, nil)
	if err != nil {
		return MintResult{}, fmt.Errorf("request tokens: %w", err)
	}
	if err := outcome.Err(s.processes.Faucet, actionRequestTokens); err != nil {
		return MintResult{}, err
	}

	message := defaultMintMessage
	if data, ok := outcome.MessageData(1); ok && strings.TrimSpace(data) != "" {
		message = data
	}

	s.logger.Info("tokens minted", zap.String("recipient", user.ProcessID), zap.Float64("amount", amount))
	return MintResult{Recipient: user.ProcessID, Amount: amount, Message: message, Outcome: outcome}, nil
}
