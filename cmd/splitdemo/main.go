package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/simaogato/exactsplit-backend/internal/domain"
	"github.com/simaogato/exactsplit-backend/internal/logging"
	"github.com/simaogato/exactsplit-backend/internal/usecase/allocator"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}

	logger, err := logging.New(logging.Config{Environment: logging.EnvironmentLocal, Level: level})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses the four allocation parameters and prints the resulting shares
func run(args []string, stdout io.Writer, logger *zap.Logger) error {
	fs := flag.NewFlagSet("splitdemo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	mantissa := fs.String("mantissa", "10001", "amount in minimal units")
	scale := fs.Uint("scale", 2, "scale of the amount")
	recipients := fs.Int("recipients", 4, "number of recipients")
	outputScale := fs.Uint("output-scale", 2, "scale of each share")

	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, ok := new(big.Int).SetString(*mantissa, 10)
	if !ok {
		return fmt.Errorf("invalid mantissa %q", *mantissa)
	}
	if *scale > uint(domain.MaxScale) || *outputScale > uint(domain.MaxScale) {
		return fmt.Errorf("%w: maximum is %d", domain.ErrUnsupportedScale, domain.MaxScale)
	}

	amount, err := domain.NewScaledAmount(raw, uint32(*scale))
	if err != nil {
		return err
	}

	shares, err := allocator.New(allocator.Config{}, logger).Allocate(amount, *recipients, uint32(*outputScale))
	if err != nil {
		return err
	}

	values := make([]string, len(shares))
	for i, share := range shares {
		values[i] = share.String()
	}

	fmt.Fprintf(stdout, "Splitting %s among %d recipients at scale %d yields: [%s]\n",
		amount, *recipients, *outputScale, strings.Join(values, ", "))

	for i, share := range shares {
		fmt.Fprintf(stdout, "Recipient %d: %s\n", i+1, share)
	}

	return nil
}
