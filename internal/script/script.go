package script

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable"
	"github.com/weedbox/baccarattable/payout"
)

var (
	ErrNoRounds     = errors.New("script: no rounds to play")
	ErrDuplicateBet = errors.New("script: player bets more than once in a round")
)

// Script describes a table and the rounds to play on it
type Script struct {
	Table  TableConfig   `hcl:"table,block"`
	Rounds []RoundConfig `hcl:"round,block"`
}

// TableConfig maps onto baccarattable.TableSetting
type TableConfig struct {
	Name                     string   `hcl:"name,label"`
	Mode                     string   `hcl:"mode,optional"`
	Players                  []string `hcl:"players"`
	BuyIn                    float64  `hcl:"buy_in"`
	BankLimit                *float64 `hcl:"bank_limit,optional"`
	TiePayout                *float64 `hcl:"tie_payout,optional"`
	CommissionRate           *float64 `hcl:"commission_rate,optional"`
	SpecialPayout            *float64 `hcl:"special_payout,optional"`
	IncludeCommissionInLimit bool     `hcl:"include_commission_in_limit,optional"`
}

// RoundConfig is one round: the bets, the actions before settling and the result
type RoundConfig struct {
	Winner         string      `hcl:"winner"`
	SpecialTrigger bool        `hcl:"special_trigger,optional"`
	AutoFix        bool        `hcl:"auto_fix,optional"`
	PassBanker     bool        `hcl:"pass_banker,optional"`
	BankLimit      *float64    `hcl:"bank_limit,optional"`
	Bets           []BetConfig `hcl:"bet,block"`
}

type BetConfig struct {
	Player string  `hcl:"player,label"`
	Side   string  `hcl:"side"`
	Amount float64 `hcl:"amount"`
}

// Load reads a round script from an HCL file
func Load(filename string) (*Script, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	return decode(file.Body)
}

// Parse reads a round script from HCL source
func Parse(src []byte, filename string) (*Script, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	return decode(file.Body)
}

func decode(body hcl.Body) (*Script, error) {
	var script Script
	diags := gohcl.DecodeBody(body, nil, &script)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	script.applyDefaults()

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return &script, nil
}

func (s *Script) applyDefaults() {
	if s.Table.Mode == "" {
		s.Table.Mode = string(payout.Mode_StandardCommission)
	}
}

// Validate checks the script before anything is played
func (s *Script) Validate() error {
	mode := payout.Mode(s.Table.Mode)
	if !mode.Valid() {
		return fmt.Errorf("table %q: unknown mode %q", s.Table.Name, s.Table.Mode)
	}

	if len(s.Rounds) == 0 {
		return ErrNoRounds
	}

	for i, round := range s.Rounds {
		if !payout.Side(round.Winner).Valid() {
			return fmt.Errorf("round %d: unknown winner %q", i+1, round.Winner)
		}

		if round.BankLimit != nil && *round.BankLimit < 0 {
			return fmt.Errorf("round %d: negative bank limit", i+1)
		}

		bettors := make(map[string]bool, len(round.Bets))
		for _, bet := range round.Bets {
			if bettors[bet.Player] {
				return fmt.Errorf("round %d: %w: %s", i+1, ErrDuplicateBet, bet.Player)
			}
			bettors[bet.Player] = true

			if !payout.Side(bet.Side).Valid() {
				return fmt.Errorf("round %d: %s bets on unknown side %q", i+1, bet.Player, bet.Side)
			}
			if bet.Amount < 0 {
				return fmt.Errorf("round %d: %s bets a negative amount", i+1, bet.Player)
			}
		}
	}

	// the rest is checked when the table is opened
	return s.TableSetting().Validate()
}

func (s *Script) TableSetting() baccarattable.TableSetting {
	mode := payout.Mode(s.Table.Mode)
	rules := baccarattable.NewDefaultTableRules(mode)
	if s.Table.TiePayout != nil {
		rules.TiePayout = decimal.NewFromFloat(*s.Table.TiePayout)
	}
	if s.Table.CommissionRate != nil {
		rules.CommissionRate = decimal.NewFromFloat(*s.Table.CommissionRate)
	}
	if s.Table.SpecialPayout != nil {
		rules.SpecialPayout = decimal.NewFromFloat(*s.Table.SpecialPayout)
	}
	rules.IncludeCommissionInLimit = s.Table.IncludeCommissionInLimit

	setting := baccarattable.TableSetting{
		Name:      s.Table.Name,
		PlayerIDs: s.Table.Players,
		BuyIn:     decimal.NewFromFloat(s.Table.BuyIn),
		Rules:     rules,
	}
	if s.Table.BankLimit != nil {
		bankLimit := decimal.NewFromFloat(*s.Table.BankLimit)
		setting.BankLimit = &bankLimit
	}

	return setting
}

func (r RoundConfig) Outcome() baccarattable.RoundOutcome {
	return baccarattable.RoundOutcome{
		Winner:         payout.Side(r.Winner),
		SpecialTrigger: r.SpecialTrigger,
	}
}

func (r RoundConfig) CollectBets() baccarattable.Bets {
	bets := make(baccarattable.Bets, len(r.Bets))
	for _, bet := range r.Bets {
		bets[bet.Player] = baccarattable.Bet{
			Side:   payout.Side(bet.Side),
			Amount: decimal.NewFromFloat(bet.Amount),
		}
	}
	return bets
}
