package common

import (
	flag "github.com/spf13/pflag"

	"github.com/gztensor/btcli/config"
)

var (
	// AnswerYesFlag answers yes to all questions.
	AnswerYesFlag *flag.FlagSet

	// SafeStakingFlags contains the safe staking switches shared by the
	// stake add and stake remove commands.
	SafeStakingFlags *flag.FlagSet

	// CacheFlags contains the result cache switches shared by the table
	// commands that support --reuse-last and --html output.
	CacheFlags *flag.FlagSet
)

var (
	answerYes bool

	safeStaking   bool
	noSafeStaking bool
	rateTolerance float64
	allowPartial  bool
	noPartial     bool

	reuseLast  bool
	htmlOutput bool
	noCache    bool
)

// GetAnswerYes returns whether all interactive questions should be answered
// with yes.
func GetAnswerYes() bool {
	return answerYes
}

// SafeStakingOptions is the effective safe staking configuration after
// merging command line flags with the configuration file defaults.
type SafeStakingOptions struct {
	Safe          bool
	RateTolerance float64
	AllowPartial  bool
}

// GetSafeStakingOptions merges the safe staking flags with the defaults
// from cfg. Flags win over configured values.
func GetSafeStakingOptions(cfg *config.Config) SafeStakingOptions {
	opts := SafeStakingOptions{
		Safe:          true,
		RateTolerance: cfg.SafeStaking.RateTolerance,
		AllowPartial:  cfg.SafeStaking.AllowPartial,
	}
	if noSafeStaking {
		opts.Safe = false
	}
	if safeStaking {
		opts.Safe = true
	}
	if SafeStakingFlags.Changed("tolerance") {
		opts.RateTolerance = rateTolerance
	}
	if allowPartial {
		opts.AllowPartial = true
	}
	if noPartial {
		opts.AllowPartial = false
	}
	return opts
}

// ShouldReuseLast returns whether the command should replay the cached
// result of its previous run instead of querying the chain.
func ShouldReuseLast() bool {
	return reuseLast && !noCache
}

// ShouldWriteHTML returns whether the command should export its result
// table to an HTML page.
func ShouldWriteHTML() bool {
	return htmlOutput
}

// ShouldCache returns whether the command should record its result for
// later reuse.
func ShouldCache() bool {
	return !noCache
}

func init() {
	AnswerYesFlag = flag.NewFlagSet("", flag.ContinueOnError)
	AnswerYesFlag.BoolVarP(&answerYes, "yes", "y", false, "answer yes to all questions")

	SafeStakingFlags = flag.NewFlagSet("", flag.ContinueOnError)
	SafeStakingFlags.BoolVar(&safeStaking, "safe", false, "submit with a price limit derived from the rate tolerance")
	SafeStakingFlags.BoolVar(&noSafeStaking, "unsafe", false, "submit without any price limit")
	SafeStakingFlags.Float64Var(&rateTolerance, "tolerance", 0.005, "allowed relative price movement for safe staking")
	SafeStakingFlags.BoolVar(&allowPartial, "partial", false, "allow partial fills when the price limit is hit")
	SafeStakingFlags.BoolVar(&noPartial, "no-partial", false, "fail instead of partially filling when the price limit is hit")

	CacheFlags = flag.NewFlagSet("", flag.ContinueOnError)
	CacheFlags.BoolVar(&reuseLast, "reuse-last", false, "reuse the result of the previous invocation instead of querying the chain")
	CacheFlags.BoolVar(&htmlOutput, "html", false, "export the result table to an HTML page")
	CacheFlags.BoolVar(&noCache, "no-cache", false, "do not read or write the result cache")
}
