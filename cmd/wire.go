package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/dumdum-cli/internal/adapters/ao"
	tomlrepo "github.com/bnema/dumdum-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/dumdum-cli/internal/adapters/secrets/chain"
	"github.com/bnema/dumdum-cli/internal/adapters/wallet"
	"github.com/bnema/dumdum-cli/internal/application"
	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/logging"
	"github.com/bnema/dumdum-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	opts     *rootOptions
	cfg      *viper.Viper
	logger   *zap.Logger
	registry *prometheus.Registry
	now      func() time.Time

	sessions  *tomlrepo.SessionRepository
	manager   *wallet.Manager
	session   *wallet.Session
	client    *application.ProcessClient
	processes application.Processes
	tokens    domain.TokenRegistry

	onboarding *application.OnboardingService
	portfolio  *application.PortfolioService
	invest     *application.InvestService
	mint       *application.MintService
	bot        *application.BotController
}

func wireApp(opts *rootOptions) (*app, error) {
	cfg, err := tomlrepo.NewConfig("")
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	return &app{
		opts:     opts,
		cfg:      cfg,
		logger:   zap.NewNop(),
		registry: prometheus.NewRegistry(),
		now:      time.Now,
	}, nil
}

// start finishes wiring once flags are parsed: logging and approval depend
// on global flags, and connect may override the configured wallet.
func (a *app) start(cmd *cobra.Command) error {
	if _, err := a.opts.format(); err != nil {
		return err
	}

	logger, err := logging.New(a.opts.verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	if cmd.Annotations[annotationOffline] == "true" {
		return nil
	}

	wallets, err := tomlrepo.NewWalletRepository(a.cfg)
	if err != nil {
		return fmt.Errorf("wire wallet repository: %w", err)
	}

	sessions, err := tomlrepo.NewSessionRepository(a.cfg, logger)
	if err != nil {
		return fmt.Errorf("wire session repository: %w", err)
	}
	a.sessions = sessions

	secrets, err := chainstore.NewPassFirstWithFileFallback(a.cfg.GetString(tomlrepo.KeyPassBinary), a.cfg.GetString(tomlrepo.KeySecretsPath))
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}
	secrets.WithLogger(logger)

	transport := &ao.Client{
		Endpoints: ao.Endpoints{
			MessengerURL: a.cfg.GetString(tomlrepo.KeyMessengerURL),
			ComputeURL:   a.cfg.GetString(tomlrepo.KeyComputeURL),
		},
		HTTPClient:    &http.Client{Timeout: a.cfg.GetDuration(tomlrepo.KeyHTTPTimeout)},
		SubmitLimiter: ao.NewSubmitLimiter(a.cfg.GetFloat64(tomlrepo.KeySubmitRPS), a.cfg.GetInt(tomlrepo.KeySubmitBurst)),
		Metrics:       ao.NewMetrics(a.registry),
		Logger:        logger,
	}

	a.manager = &wallet.Manager{Wallets: wallets, Secrets: secrets, Clock: ports.SystemClock{}}
	a.session = wallet.NewSession(wallet.SessionDeps{
		Wallets:   wallets,
		Sessions:  sessions,
		Secrets:   secrets,
		Approver:  a.approver(cmd),
		Transport: transport,
		Spawn: ports.SpawnConfig{
			Module:    a.cfg.GetString(tomlrepo.KeyModule),
			Scheduler: a.cfg.GetString(tomlrepo.KeyScheduler),
			Authority: a.cfg.GetString(tomlrepo.KeyAuthority),
		},
		Logger:  logger,
		Address: a.cfg.GetString(tomlrepo.KeyWallet),
	})
	if err := a.session.Restore(cmd.Context()); err != nil {
		return fmt.Errorf("restore wallet session: %w", err)
	}

	a.processes = application.Processes{
		Main:      a.cfg.GetString(tomlrepo.KeyMainProcess),
		Arbitrage: a.cfg.GetString(tomlrepo.KeyArbitrageProcess),
		Faucet:    a.cfg.GetString(tomlrepo.KeyFaucetProcess),
	}
	a.tokens = tokenRegistry(tomlrepo.Tokens(a.cfg))

	a.client = application.NewProcessClient(a.session, transport, logger, application.NewMetrics(a.registry))
	a.onboarding = application.NewOnboardingService(a.client, a.processes, logger)
	a.portfolio = application.NewPortfolioService(a.client, a.processes, ports.SystemClock{})
	a.invest = application.NewInvestService(a.client, a.processes, a.tokens, logger)
	a.mint = application.NewMintService(a.client, a.processes, logger)
	a.bot = application.NewBotController(a.client, a.processes.Arbitrage, logger)

	return nil
}

func (a *app) finish() error {
	defer func() { _ = a.logger.Sync() }()

	if a.opts.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.opts.metricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	return nil
}

func (a *app) approver(cmd *cobra.Command) ports.Approver {
	if a.opts.yes {
		return wallet.AutoApprover{}
	}

	return wallet.TerminalApprover{Input: cmd.InOrStdin(), Output: cmd.ErrOrStderr()}
}

func tokenRegistry(symbols map[string]string) domain.TokenRegistry {
	tokens := make([]domain.Token, 0, len(symbols))
	for symbol, address := range symbols {
		tokens = append(tokens, domain.Token{Name: symbol, Symbol: symbol, Address: address})
	}

	return domain.NewTokenRegistry(tokens...)
}
