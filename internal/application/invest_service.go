package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvestRequest struct {
	From         string
	To           string
	Amount       float64
	RecurringDay int
}

type InvestResult struct {
	PlanID  string
	Plan    domain.InvestmentPlan
	Outcome domain.WriteOutcome
}

// InvestService schedules recurring purchases on the main process.
type InvestService struct {
	client    *ProcessClient
	processes Processes
	tokens    domain.TokenRegistry
	logger    *zap.Logger
	newID     func() string
}

func NewInvestService(client *ProcessClient, processes Processes, tokens domain.TokenRegistry, logger *zap.Logger) *InvestService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InvestService{
		client:    client,
		processes: processes,
		tokens:    tokens,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

func (s *InvestService) Invest(ctx context.Context, req InvestRequest) (InvestResult, error) {
	if req.Amount <= 0 {
		return InvestResult{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidRequest)
	}
	if err := domain.ValidateRecurringDay(req.RecurringDay); err != nil {
		return InvestResult{}, err
	}

	from, err := s.tokens.Resolve(strings.TrimSpace(req.From))
	if err != nil {
		return InvestResult{}, err
	}
	to, err := s.tokens.Resolve(strings.TrimSpace(req.To))
	if err != nil {
		return InvestResult{}, err
	}
	if from.Address == to.Address {
		return InvestResult{}, fmt.Errorf("%w: input and output tokens must be different", domain.ErrInvalidRequest)
	}

	account, err := s.client.Account()
	if err != nil {
		return InvestResult{}, err
	}

	plan := domain.InvestmentPlan{
		WalletAddress:  account.Address,
		InputToken:     from.Address,
		OutputToken:    to.Address,
		NumberOfTokens: req.Amount,
		RecurringDay:   req.RecurringDay,
	}
	planID := s.newID()

	outcome, err := s.client.Write(ctx, s.processes.Main, domain.Tags{
		domain.Action(actionAddInvestmentPlan),
		{Name: tagWalletAddress, Value: plan.WalletAddress},
		{Name: tagInputTokenAddr, Value: plan.InputToken},
		{Name: tagOutputTokenAddr, Value: plan.OutputToken},
		domain.NumberTag(tagNumberOfTokens, plan.NumberOfTokens),
		domain.IntTag(tagRecurringDay, plan.RecurringDay),
		{Name: tagPlanID, Value: planID},
	}, nil)
	if err != nil {
		return InvestResult{}, fmt.Errorf("add investment plan: %w", err)
	}
	if err := outcome.Err(s.processes.Main, actionAddInvestmentPlan); err != nil {
		return InvestResult{}, err
	}

	s.logger.Info("investment plan added",
		zap.String("plan", planID),
		zap.String("from", from.Symbol),
		zap.String("to", to.Symbol),
		zap.Float64("amount", req.Amount),
		zap.Int("day", req.RecurringDay),
	)

	return InvestResult{PlanID: planID, Plan: plan, Outcome: outcome}, nil
}
