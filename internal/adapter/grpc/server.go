package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/exactsplit-backend/internal/domain"
	"github.com/simaogato/exactsplit-backend/internal/usecase/split"
)

// Request and response field names
const (
	fieldMantissa     = "mantissa"
	fieldScale        = "scale"
	fieldRecipients   = "recipients"
	fieldOutputScale  = "output_scale"
	fieldAllocationID = "allocation_id"
	fieldCreatedAt    = "created_at"
	fieldAmount       = "amount"
	fieldShares       = "shares"
	fieldValue        = "value"
)

// largest integer a float64 carries exactly
const maxExactInteger = 1 << 53

// Splitter is the use case behind the gRPC server
// Implemented by *split.SplitService.
type Splitter interface {
	Split(ctx context.Context, input split.SplitInput) (*domain.Allocation, error)
}

// Server implements the SplitService gRPC server
type Server struct {
	SplitService Splitter
}

// NewServer creates a new gRPC server instance
func NewServer(splitService Splitter) *Server {
	return &Server{SplitService: splitService}
}

var _ SplitServiceServer = (*Server)(nil)

// Allocate handles the Allocate RPC
// Request fields: mantissa (string), scale, recipients, output_scale (numbers).
// Response fields: allocation_id, created_at, amount, recipients, output_scale and
// shares, a list of {mantissa, scale, value}.
func (s *Server) Allocate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := decodeAllocateRequest(req)
	if err != nil {
		if errors.Is(err, domain.ErrArithmeticOverflow) || errors.Is(err, domain.ErrUnsupportedScale) {
			return nil, mapError(err)
		}
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	allocation, err := s.SplitService.Split(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp, err := encodeAllocation(allocation)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode allocation: %v", err)
	}

	return resp, nil
}

// NewAllocateRequest builds the request message for an Allocate call
func NewAllocateRequest(amount domain.ScaledAmount, recipients int, outputScale uint32) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldMantissa:    amount.Mantissa().String(),
		fieldScale:       amount.Scale(),
		fieldRecipients:  recipients,
		fieldOutputScale: outputScale,
	})
}

// DecodeShares extracts the shares of an Allocate response
func DecodeShares(resp *structpb.Struct) ([]domain.ScaledAmount, error) {
	list := resp.GetFields()[fieldShares].GetListValue()
	if list == nil {
		return nil, errors.New("response has no shares")
	}

	shares := make([]domain.ScaledAmount, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue()
		if fields == nil {
			return nil, fmt.Errorf("share %d is not an object", i)
		}

		share, err := decodeAmount(fields)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i, err)
		}
		shares = append(shares, share)
	}

	return shares, nil
}

func decodeAllocateRequest(req *structpb.Struct) (split.SplitInput, error) {
	if req == nil {
		return split.SplitInput{}, errors.New("missing request")
	}

	amount, err := decodeAmount(req)
	if err != nil {
		return split.SplitInput{}, err
	}

	recipients, err := integerField(req, fieldRecipients)
	if err != nil {
		return split.SplitInput{}, err
	}

	outputScale, err := scaleField(req, fieldOutputScale)
	if err != nil {
		return split.SplitInput{}, err
	}

	return split.SplitInput{
		Amount:      amount,
		Recipients:  int(recipients),
		OutputScale: outputScale,
	}, nil
}

func decodeAmount(s *structpb.Struct) (domain.ScaledAmount, error) {
	v, ok := s.GetFields()[fieldMantissa]
	if !ok {
		return domain.ScaledAmount{}, fmt.Errorf("missing %s", fieldMantissa)
	}
	raw, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return domain.ScaledAmount{}, fmt.Errorf("invalid %s: must be a string", fieldMantissa)
	}

	mantissa, ok := new(big.Int).SetString(raw.StringValue, 10)
	if !ok {
		return domain.ScaledAmount{}, fmt.Errorf("invalid %s format: %q", fieldMantissa, raw.StringValue)
	}

	scale, err := scaleField(s, fieldScale)
	if err != nil {
		return domain.ScaledAmount{}, err
	}

	return domain.NewScaledAmount(mantissa, scale)
}

func scaleField(s *structpb.Struct, name string) (uint32, error) {
	n, err := integerField(s, name)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("invalid %s: must be non-negative", name)
	}
	return uint32(n), nil
}

func integerField(s *structpb.Struct, name string) (int64, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("missing %s", name)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("invalid %s: must be a number", name)
	}

	f := num.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > maxExactInteger {
		return 0, fmt.Errorf("invalid %s: must be an integer", name)
	}

	return int64(f), nil
}

func encodeAllocation(allocation *domain.Allocation) (*structpb.Struct, error) {
	shares := make([]any, 0, len(allocation.Shares))
	for _, share := range allocation.Shares {
		shares = append(shares, map[string]any{
			fieldMantissa: share.Mantissa().String(),
			fieldScale:    share.Scale(),
			fieldValue:    share.String(),
		})
	}

	return structpb.NewStruct(map[string]any{
		fieldAllocationID: allocation.ID.String(),
		fieldCreatedAt:    allocation.CreatedAt.Format(time.RFC3339Nano),
		fieldAmount:       allocation.Amount.String(),
		fieldRecipients:   allocation.Recipients,
		fieldOutputScale:  allocation.OutputScale,
		fieldShares:       shares,
	})
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRecipientCount),
		errors.Is(err, domain.ErrUnsupportedScale),
		errors.Is(err, domain.ErrNegativeAmountUnsupported):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrArithmeticOverflow):
		return status.Errorf(codes.OutOfRange, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
