package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable"
	"github.com/weedbox/baccarattable/chips"
	"github.com/weedbox/baccarattable/internal/script"
)

type CLI struct {
	LogLevel string `short:"l" env:"BACCARAT_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})"`

	Play  PlayCmd  `cmd:"" help:"Play every round of an HCL table script"`
	Chips ChipsCmd `cmd:"" help:"Break amounts down into casino chips"`
}

type PlayCmd struct {
	Script string `arg:"" type:"existingfile" help:"Path to the HCL round script"`
	NoLog  bool   `help:"Hide the activity log"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	s, err := script.Load(c.Script)
	if err != nil {
		return err
	}

	logger.Info("Playing script",
		"table", s.Table.Name,
		"mode", s.Table.Mode,
		"players", len(s.Table.Players),
		"rounds", len(s.Rounds))

	report, err := script.Play(s, baccarattable.WithLogger(logger))
	if report != nil {
		renderReport(os.Stdout, report, !c.NoLog)
	}
	return err
}

type ChipsCmd struct {
	Amounts []string `arg:"" help:"Amounts to break down, e.g. 1131 195.50"`
}

func (c *ChipsCmd) Run(logger *log.Logger) error {
	for _, raw := range c.Amounts {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", raw, err)
		}

		logger.Debug("Breaking down amount", "amount", amount.String())
		renderBreakdown(os.Stdout, amount, chips.NewBreakdown(amount))
	}
	return nil
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("baccarat-table"),
		kong.Description("Baccarat table tracker and settlement engine"),
		kong.UsageOnError(),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "baccarat",
	})
	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	logger.SetLevel(level)

	err = ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
