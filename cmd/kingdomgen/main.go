// Command kingdomgen generates a Dominion-style kingdom from a card catalog.
// It wires together config parsing, catalog ingestion, constraint assembly
// and the recursive builder search, then dumps the finished selection to
// stdout. Grounded on decker-rs's main.rs orchestration.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kingdomgen/internal/apperrors"
	"kingdomgen/internal/builder"
	"kingdomgen/internal/card"
	"kingdomgen/internal/catalog"
	"kingdomgen/internal/config"
	"kingdomgen/internal/logger"
	"kingdomgen/internal/present"
)

const (
	exitOK                = 0
	exitConfigError       = 1
	exitNoValidKingdom    = 2
	exitValidationFailed  = 3
	exitConstraintsFailed = 4

	defaultCardFile = "cards.dat"
	defaultBoxFile  = ""
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if err := logger.Init(nil); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	runID := uuid.New().String()
	log := logger.WithRunContext(runID)

	opts, err := config.ParseFlags(args)
	if err != nil {
		return fail(log, exitConfigError, err)
	}

	cfg, err := config.Load(opts, defaultCardFile, defaultBoxFile)
	if err != nil {
		return fail(log, exitConfigError, err)
	}

	var allCards []*card.Card
	for _, p := range cfg.Piles {
		allCards = append(allCards, p.Cards()...)
	}
	col := catalog.New(cfg.Piles, allCards)

	if cfg.Validate {
		if warnings := col.Validate(); len(warnings) > 0 {
			for _, w := range warnings {
				log.Warn("catalog validation warning", zap.String("warning", w))
			}
			return exitValidationFailed
		}
	}

	if cfg.ListCollection {
		for _, p := range col.Piles() {
			fmt.Println(p.Name())
		}
		return exitOK
	}

	col.Shuffle(cfg.Rand)

	b := builder.New(col)
	cons, err := config.BuildConstraints(col, cfg, b.BuildFunc())
	if err != nil {
		return fail(log, exitConstraintsFailed, err)
	}

	sel, err := b.GenerateSelection(10, cfg.OptionalExtras, cfg.Includes, cons, cfg.Rand)
	if err != nil {
		return fail(log, exitNoValidKingdom, err)
	}

	var out strings.Builder
	present.Dump(&out, sel, cfg.Why, cfg.MoreInfo)
	fmt.Print(out.String())

	return exitOK
}

// fail logs err at the appropriate level (configuration-boundary errors are
// expected operator mistakes, not engine bugs) and echoes it to stderr.
func fail(log *zap.Logger, code int, err error) int {
	var missing *apperrors.MissingFileError
	var unknownRef *apperrors.UnknownReferenceError
	var badOpt *apperrors.UnknownOptionError
	if errors.As(err, &missing) || errors.As(err, &unknownRef) || errors.As(err, &badOpt) {
		log.Warn("configuration error", zap.Error(err))
	} else {
		log.Error("run failed", zap.Error(err))
	}
	fmt.Fprintln(os.Stderr, err)
	return code
}
