package application

import (
	"context"
	"fmt"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	"golang.org/x/sync/errgroup"
)

type PortfolioService struct {
	client    *ProcessClient
	processes Processes
	clock     ports.Clock
}

func NewPortfolioService(client *ProcessClient, processes Processes, clock ports.Clock) *PortfolioService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &PortfolioService{client: client, processes: processes, clock: clock}
}

// Summary hydrates the connected wallet's plans and user record in
// parallel. A missing user record leaves ProcessID empty.
func (s *PortfolioService) Summary(ctx context.Context) (domain.PortfolioSummary, error) {
	account, err := s.client.Account()
	if err != nil {
		return domain.PortfolioSummary{}, err
	}

	var (
		plans []domain.InvestmentPlan
		user  domain.UserRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.client.ReadInto(gctx, s.processes.Main, domain.Tags{
			domain.Action(actionGetInvestmentPlans),
			{Name: tagWalletAddress, Value: account.Address},
		}, &plans)
		if err != nil {
			return fmt.Errorf("read investment plans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		record, _, err := lookupUser(gctx, s.client, s.processes.Main, account.Address)
		if err != nil {
			return err
		}
		user = record
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.PortfolioSummary{}, err
	}

	summary := domain.SummarizePortfolio(plans, s.clock.Now())
	summary.Address = account.Address
	summary.ProcessID = user.ProcessID

	return summary, nil
}
