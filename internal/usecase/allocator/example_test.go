package allocator_test

import (
	"fmt"

	"github.com/simaogato/exactsplit-backend/internal/domain"
	"github.com/simaogato/exactsplit-backend/internal/usecase/allocator"
)

func ExampleAllocator_Allocate() {
	// 10001 minimal units at scale 2 represent 100.01
	amount := domain.MustNewScaledAmount(10001, 2)

	shares, err := allocator.New(allocator.Config{}, nil).Allocate(amount, 4, 2)
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, share := range shares {
		fmt.Printf("Recipient %d: %s\n", i+1, share)
	}
	// Output:
	// Recipient 1: 25.01
	// Recipient 2: 25.00
	// Recipient 3: 25.00
	// Recipient 4: 25.00
}

func ExampleAllocator_Allocate_rescaled() {
	// The raw mantissa is reused verbatim at the requested scale
	amount := domain.MustNewScaledAmount(1234567, 0)

	shares, _ := allocator.New(allocator.Config{}, nil).Allocate(amount, 1, 2)

	fmt.Println(shares[0])
	// Output: 12345.67
}
