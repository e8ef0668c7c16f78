package allocator

import (
	"fmt"
	"math/big"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/exactsplit-backend/internal/domain"
)

const (
	// DefaultMaxRecipients bounds the size of a single allocation
	DefaultMaxRecipients = 1_000_000

	// MinChunkSize is the smallest index range handed to one worker
	MinChunkSize = 1024
)

// Config holds the tunables of an Allocator
type Config struct {
	// Workers caps the number of goroutines filling shares. Zero means GOMAXPROCS.
	Workers int
	// MaxRecipients caps the recipient count. Zero means DefaultMaxRecipients.
	MaxRecipients int
}

// Allocator splits an amount into equal integer shares that add up exactly
type Allocator struct {
	workers       int
	maxRecipients int
	logger        *zap.Logger
}

// New creates a new Allocator
// A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Allocator {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxRecipients <= 0 {
		cfg.MaxRecipients = DefaultMaxRecipients
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Allocator{
		workers:       cfg.Workers,
		maxRecipients: cfg.MaxRecipients,
		logger:        logger,
	}
}

// Allocate splits amount across recipients and returns one share per recipient
// Logic:
//  1. Take the raw mantissa of amount as minimal units (amount's own scale is ignored)
//  2. base = raw / recipients, remainder = raw % recipients
//  3. The first `remainder` recipients get base+1, the rest get base
//  4. Every share is built at outputScale
//  5. Reconcile: while the shares add up to less than raw, add one unit to the first share
//
// Safety: either every share is returned and they sum to raw exactly, or an error is returned
func (a *Allocator) Allocate(amount domain.ScaledAmount, recipients int, outputScale uint32) ([]domain.ScaledAmount, error) {
	if recipients <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", domain.ErrInvalidRecipientCount, recipients)
	}
	if recipients > a.maxRecipients {
		return nil, fmt.Errorf("%w: %d exceeds maximum of %d", domain.ErrInvalidRecipientCount, recipients, a.maxRecipients)
	}

	if err := domain.CheckScale(outputScale); err != nil {
		return nil, err
	}

	raw := amount.Mantissa()
	if raw.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNegativeAmountUnsupported, amount)
	}
	if err := domain.CheckMantissa(raw); err != nil {
		return nil, err
	}

	n := big.NewInt(int64(recipients))
	base, rem := new(big.Int).QuoRem(raw, n, new(big.Int))

	shares, err := a.distribute(base, int(rem.Int64()), recipients, outputScale)
	if err != nil {
		return nil, err
	}

	adjustments, err := reconcile(shares, raw, outputScale)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("amount allocated",
		zap.String("raw", raw.String()),
		zap.Uint32("input_scale", amount.Scale()),
		zap.Uint32("output_scale", outputScale),
		zap.Int("recipients", recipients),
		zap.String("base", base.String()),
		zap.Int64("remainder", rem.Int64()),
		zap.Int("adjustments", adjustments),
	)

	return shares, nil
}

// distribute fills one share per recipient index in parallel
// Workers own disjoint index ranges of the pre-sized slice, so order does not
// depend on completion order.
func (a *Allocator) distribute(base *big.Int, remainder, recipients int, scale uint32) ([]domain.ScaledAmount, error) {
	plain, err := domain.NewScaledAmount(base, scale)
	if err != nil {
		return nil, err
	}

	var bumped domain.ScaledAmount
	if remainder > 0 {
		bumped, err = domain.NewScaledAmount(new(big.Int).Add(base, big.NewInt(1)), scale)
		if err != nil {
			return nil, err
		}
	}

	shares := make([]domain.ScaledAmount, recipients)

	var g errgroup.Group
	g.SetLimit(a.workers)

	for _, r := range chunks(recipients, a.workers) {
		g.Go(func() error {
			for i := r.start; i < r.end; i++ {
				if i < remainder {
					shares[i] = bumped
				} else {
					shares[i] = plain
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return shares, nil
}

// reconcile repairs any shortfall between the shares and raw by topping up the first share
// Returns the number of single-unit adjustments made. An overshoot means the
// distribution is broken and is reported as ErrConservationViolated.
func reconcile(shares []domain.ScaledAmount, raw *big.Int, scale uint32) (int, error) {
	diff := new(big.Int).Sub(raw, domain.SumMantissas(shares))
	if diff.Sign() < 0 {
		return 0, fmt.Errorf("%w: shares exceed amount by %s", domain.ErrConservationViolated, new(big.Int).Neg(diff))
	}

	adjustments := 0
	for diff.Sign() > 0 {
		first := shares[0].Mantissa()
		first.Add(first, big.NewInt(1))

		topped, err := domain.NewScaledAmount(first, scale)
		if err != nil {
			return adjustments, err
		}
		shares[0] = topped
		adjustments++

		diff.Sub(raw, domain.SumMantissas(shares))
	}

	return adjustments, nil
}

type span struct {
	start, end int
}

// chunks splits [0, n) into contiguous ranges of at least MinChunkSize indexes, at most one per worker
func chunks(n, workers int) []span {
	count := (n + MinChunkSize - 1) / MinChunkSize
	if count > workers {
		count = workers
	}
	if count < 1 {
		count = 1
	}

	size := (n + count - 1) / count
	out := make([]span, 0, count)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, span{start: start, end: end})
	}
	return out
}
