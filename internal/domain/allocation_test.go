package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func shares(scale uint32, mantissas ...int64) []ScaledAmount {
	out := make([]ScaledAmount, 0, len(mantissas))
	for _, m := range mantissas {
		out = append(out, MustNewScaledAmount(m, scale))
	}
	return out
}

func TestAllocation_Validate(t *testing.T) {
	tests := []struct {
		name       string
		allocation Allocation
		wantErr    error
		errMsg     string
	}{
		{
			name: "valid even split",
			allocation: Allocation{
				ID:          uuid.New(),
				Amount:      MustNewScaledAmount(10001, 2),
				Recipients:  4,
				OutputScale: 2,
				Shares:      shares(2, 2501, 2500, 2500, 2500),
			},
		},
		{
			name: "zero shares are kept",
			allocation: Allocation{
				Amount:      MustNewScaledAmount(2, 0),
				Recipients:  3,
				OutputScale: 0,
				Shares:      shares(0, 1, 1, 0),
			},
		},
		{
			name: "no recipients",
			allocation: Allocation{
				Amount:     MustNewScaledAmount(1, 0),
				Recipients: 0,
			},
			wantErr: ErrInvalidRecipientCount,
		},
		{
			name: "share count mismatch",
			allocation: Allocation{
				Amount:      MustNewScaledAmount(10, 0),
				Recipients:  3,
				OutputScale: 0,
				Shares:      shares(0, 5, 5),
			},
			errMsg: "allocation must have 3 shares, got 2",
		},
		{
			name: "share at the wrong scale",
			allocation: Allocation{
				Amount:      MustNewScaledAmount(10, 0),
				Recipients:  2,
				OutputScale: 0,
				Shares:      []ScaledAmount{MustNewScaledAmount(5, 0), MustNewScaledAmount(5, 1)},
			},
			errMsg: "share 1 has scale 1, expected 0",
		},
		{
			name: "penny lost",
			allocation: Allocation{
				Amount:      MustNewScaledAmount(10001, 2),
				Recipients:  2,
				OutputScale: 2,
				Shares:      shares(2, 5000, 5000),
			},
			wantErr: ErrConservationViolated,
		},
		{
			name: "penny invented",
			allocation: Allocation{
				Amount:      MustNewScaledAmount(10001, 2),
				Recipients:  2,
				OutputScale: 2,
				Shares:      shares(2, 5001, 5001),
			},
			wantErr: ErrConservationViolated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.allocation.Validate()

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllocation_TotalAndSpread(t *testing.T) {
	allocation := Allocation{
		Amount:      MustNewScaledAmount(10001, 2),
		Recipients:  3,
		OutputScale: 2,
		Shares:      shares(2, 3334, 3334, 3333),
	}

	assert.Equal(t, int64(10001), allocation.Total().Int64())
	assert.Equal(t, int64(1), allocation.Spread().Int64())

	empty := Allocation{}
	assert.Equal(t, int64(0), empty.Total().Int64())
	assert.Equal(t, int64(0), empty.Spread().Int64())
}
