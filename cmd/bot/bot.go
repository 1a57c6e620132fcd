package bot

import (
	"context"
	"fmt"
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/forkoooor/skipper/chain"
	"github.com/forkoooor/skipper/config"
	"github.com/forkoooor/skipper/dex"
	"github.com/forkoooor/skipper/gas"
	"github.com/forkoooor/skipper/journal"
	"github.com/forkoooor/skipper/mempool"
	"github.com/forkoooor/skipper/strategies/arbitrage"
	"github.com/forkoooor/skipper/utils/metrics"
)

// Bot wires the mempool watcher, swap extractor, chain querier and the
// arbitrage strategy into one evaluation loop.
type Bot struct {
	cfg       *config.Config
	client    *chain.Client
	querier   *chain.PoolQuerier
	watcher   *mempool.Watcher
	extractor *mempool.Extractor
	estimator *gas.Estimator
	journal   *journal.Journal
	metrics   *metrics.BotMetrics
	contracts map[string]*dex.Pool
	cycles    [][]*dex.Pool
	logger    *zap.Logger
}

// New creates a bot instance from the validated configuration.
func New(cfg *config.Config, reg prometheus.Registerer, logger *zap.Logger) (*Bot, error) {
	contracts, cycles, err := config.LoadRegistry(cfg.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	client := chain.NewClient(cfg.RPCEndpoint, cfg.NetworkTimeout, logger)
	botMetrics := metrics.NewBotMetrics(cfg.MetricsNamespace, reg)

	extractor, err := mempool.NewExtractor(contracts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	jrnl, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &Bot{
		cfg:       cfg,
		client:    client,
		querier:   chain.NewPoolQuerier(client, logger),
		watcher:   mempool.NewWatcher(client, cfg.PollInterval, logger, botMetrics),
		extractor: extractor,
		estimator: gas.NewEstimator(cfg.GasLimit, cfg.GasPrice),
		journal:   jrnl,
		metrics:   botMetrics,
		contracts: contracts,
		cycles:    cycles,
		logger:    logger,
	}, nil
}

// Run polls the mempool and evaluates every tracked route touched by a new
// pending swap. It blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	defer b.journal.Close()

	b.logger.Info("Starting skipper",
		zap.String("chain_id", b.cfg.ChainID),
		zap.String("arb_denom", b.cfg.ArbDenom),
		zap.Int("pools", len(b.contracts)),
		zap.Int("routes", len(b.cycles)))

	for {
		txs, err := b.watcher.PollForNewSwaps(ctx)
		if err != nil {
			if ctx.Err() != nil {
				b.logger.Info("Shutting down")
				return nil
			}
			return err
		}

		for _, tx := range txs {
			for _, swap := range b.extractor.ExtractSwaps(tx) {
				b.metrics.SwapsExtracted.Inc()
				b.evaluateSwap(ctx, swap)
			}
		}
	}
}

// evaluateSwap sizes and simulates every tracked cycle that contains the
// pool the pending swap trades against.
func (b *Bot) evaluateSwap(ctx context.Context, swap arbitrage.Swap) {
	for _, cycle := range b.cycles {
		route, err := arbitrage.NewRoute(cycle...)
		if err != nil || !route.ContainsPool(swap.ContractAddress) {
			continue
		}

		if err := route.OrderPools(b.contracts, swap, b.cfg.ArbDenom); err != nil {
			b.logger.Warn("Failed to order route",
				zap.String("pool", swap.ContractAddress),
				zap.Error(err))
			continue
		}

		if err := b.refreshRoute(ctx, route); err != nil {
			b.logger.Warn("Failed to refresh route reserves", zap.Error(err))
			continue
		}

		if route.ComputeOptimalAmountIn().Sign() <= 0 {
			continue
		}

		balance, reset, err := b.client.SpendableBalance(ctx, b.cfg.WalletAddress, b.cfg.ArbDenom)
		if err != nil {
			b.logger.Warn("Failed to query spendable balance", zap.Error(err))
			continue
		}
		if reset {
			b.metrics.BalanceResets.Inc()
			continue
		}

		route.ClampAmountIn(balance, b.estimator.Fee())
		if route.AmountIn.Sign() <= 0 {
			continue
		}

		profit := route.Simulate()
		if profit.Sign() <= 0 {
			continue
		}

		b.recordOpportunity(ctx, route, profit)
	}
}

func (b *Bot) refreshRoute(ctx context.Context, route *arbitrage.Route) error {
	for _, pool := range route.Pools {
		if err := b.querier.RefreshReserves(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) recordOpportunity(ctx context.Context, route *arbitrage.Route, profit *big.Int) {
	b.metrics.Opportunities.Inc()
	profitF, _ := new(big.Float).SetInt(profit).Float64()
	b.metrics.ProfitTotal.Add(profitF)

	addresses := make([]string, len(route.Pools))
	for i, pool := range route.Pools {
		addresses[i] = pool.ContractAddress
	}

	id, err := b.journal.Record(ctx, journal.Entry{
		ArbDenom:      b.cfg.ArbDenom,
		RouteContract: journal.RouteKey(addresses),
		AmountIn:      route.AmountIn,
		Profit:        profit,
	})
	if err != nil {
		b.logger.Error("Failed to journal opportunity", zap.Error(err))
	}

	b.logger.Info("Profitable cycle detected",
		zap.String("id", id),
		zap.Strings("route", addresses),
		zap.String("amount_in", route.AmountIn.String()),
		zap.String("optimal_amount_in", route.OptimalAmountIn.String()),
		zap.String("profit", profit.String()))

	// TODO: sign and broadcast the cycle once wallet support lands.
}
