package split

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/exactsplit-backend/internal/domain"
)

// SharesAllocator computes the per-recipient shares of an amount
// Implemented by *allocator.Allocator.
type SharesAllocator interface {
	Allocate(amount domain.ScaledAmount, recipients int, outputScale uint32) ([]domain.ScaledAmount, error)
}

// SplitInput represents the input for splitting an amount
type SplitInput struct {
	Amount      domain.ScaledAmount
	Recipients  int
	OutputScale uint32
}

// SplitService handles split requests
type SplitService struct {
	Allocator SharesAllocator

	logger *zap.Logger
	now    func() time.Time
}

// NewSplitService creates a new SplitService instance
func NewSplitService(allocator SharesAllocator, logger *zap.Logger) *SplitService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SplitService{
		Allocator: allocator,
		logger:    logger,
		now:       time.Now,
	}
}

// Split allocates an amount across recipients
// Logic:
//  1. Call the allocator to compute the shares
//  2. Stamp the Allocation with a new ID and creation time
//  3. Validate count and conservation before handing it back
//
// No Allocation is returned on failure.
func (s *SplitService) Split(ctx context.Context, input SplitInput) (*domain.Allocation, error) {
	logger := s.logger.With(
		zap.String("amount", input.Amount.String()),
		zap.Int("recipients", input.Recipients),
		zap.Uint32("output_scale", input.OutputScale),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shares, err := s.Allocator.Allocate(input.Amount, input.Recipients, input.OutputScale)
	if err != nil {
		logger.Warn("split rejected", zap.Error(err))
		return nil, err
	}

	allocation := &domain.Allocation{
		ID:          uuid.New(),
		Amount:      input.Amount,
		Recipients:  input.Recipients,
		OutputScale: input.OutputScale,
		Shares:      shares,
		CreatedAt:   s.now().UTC(),
	}

	if err := allocation.Validate(); err != nil {
		logger.Error("allocator returned an invalid allocation", zap.Error(err))
		return nil, err
	}

	logger.Info("split completed",
		zap.String("allocation_id", allocation.ID.String()),
		zap.String("spread", allocation.Spread().String()),
	)

	return allocation, nil
}
