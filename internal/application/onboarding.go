package application

import (
	"context"
	"fmt"

	"github.com/bnema/dumdum-cli/internal/domain"
	"go.uber.org/zap"
)

type OnboardingStatus string

const (
	Onboarded        OnboardingStatus = "onboarded"
	OnboardingFailed OnboardingStatus = "failed"
)

type OnboardingResult struct {
	Status    OnboardingStatus
	Address   string
	ProcessID string
	// Existing is set when the address was already registered.
	Existing bool
	// Error is the remote error text when Status is OnboardingFailed.
	Error string
}

// OnboardingService registers the connected wallet with the main process,
// provisioning a personal process first when the wallet is unknown.
type OnboardingService struct {
	client    *ProcessClient
	processes Processes
	logger    *zap.Logger
}

func NewOnboardingService(client *ProcessClient, processes Processes, logger *zap.Logger) *OnboardingService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OnboardingService{client: client, processes: processes, logger: logger}
}

// Onboard runs lookup, provision and register in order. A remote rejection
// of the registration ends in OnboardingFailed; nothing is retried.
func (s *OnboardingService) Onboard(ctx context.Context) (OnboardingResult, error) {
	account, err := s.client.Account()
	if err != nil {
		return OnboardingResult{}, err
	}

	user, found, err := lookupUser(ctx, s.client, s.processes.Main, account.Address)
	if err != nil {
		return OnboardingResult{}, err
	}
	if found {
		s.logger.Debug("wallet already onboarded", zap.String("address", account.Address), zap.String("process", user.ProcessID))
		return OnboardingResult{
			Status:    Onboarded,
			Address:   account.Address,
			ProcessID: user.ProcessID,
			Existing:  true,
		}, nil
	}

	processID, err := s.client.Spawn(ctx, account.Address, nil)
	if err != nil {
		return OnboardingResult{}, fmt.Errorf("provision user process: %w", err)
	}

	outcome, err := s.client.Write(ctx, s.processes.Main, domain.Tags{
		domain.Action(actionAddUser),
		{Name: tagWalletAddress, Value: account.Address},
		{Name: tagProcessID, Value: processID},
	}, nil)
	if err != nil {
		return OnboardingResult{}, fmt.Errorf("register user: %w", err)
	}

	result := OnboardingResult{Address: account.Address, ProcessID: processID}
	if outcome.Failed() {
		result.Status = OnboardingFailed
		result.Error = outcome.Error
		s.logger.Warn("onboarding rejected", zap.String("address", account.Address), zap.String("error", outcome.Error))
		return result, outcome.Err(s.processes.Main, actionAddUser)
	}

	result.Status = Onboarded
	s.logger.Info("wallet onboarded", zap.String("address", account.Address), zap.String("process", processID))
	return result, nil
}

// lookupUser reads the main process's record for address. Any record
// counts as found, with or without a process id.
func lookupUser(ctx context.Context, client *ProcessClient, mainProcess string, address string) (domain.UserRecord, bool, error) {
	var users []domain.UserRecord
	err := client.ReadInto(ctx, mainProcess, domain.Tags{
		domain.Action(actionGetUser),
		{Name: tagWalletAddress, Value: address},
	}, &users)
	if err != nil {
		return domain.UserRecord{}, false, fmt.Errorf("look up user: %w", err)
	}

	if len(users) == 0 {
		return domain.UserRecord{}, false, nil
	}

	return users[0], true, nil
}
