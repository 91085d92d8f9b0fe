package script

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable"
)

type Report struct {
	Table   *baccarattable.Table
	Results []*baccarattable.RoundResult
}

/*
Play 開桌並依序執行腳本中每一局
  - 開局前可換莊或調整莊家上限
  - auto_fix 時先依上限修正下注再結算
*/
func Play(s *Script, opts ...baccarattable.TableEngineOpt) (*Report, error) {
	tableEngine := baccarattable.NewTableEngine(baccarattable.NewTableEngineOptions(), opts...)

	table, err := tableEngine.CreateTable(s.TableSetting())
	if err != nil {
		return nil, err
	}

	report := &Report{
		Table:   table,
		Results: make([]*baccarattable.RoundResult, 0, len(s.Rounds)),
	}

	for i, round := range s.Rounds {
		result, err := playRound(tableEngine, round)
		if err != nil {
			return report, fmt.Errorf("round %d: %w", i+1, err)
		}
		report.Results = append(report.Results, result)
	}

	if err := tableEngine.CloseTable(); err != nil {
		return report, err
	}

	return report, nil
}

func playRound(tableEngine baccarattable.TableEngine, round RoundConfig) (*baccarattable.RoundResult, error) {
	if round.PassBanker {
		if _, err := tableEngine.PassBanker(); err != nil {
			return nil, err
		}
	}

	if round.BankLimit != nil {
		if err := tableEngine.UpdateBankLimit(decimal.NewFromFloat(*round.BankLimit)); err != nil {
			return nil, err
		}
	}

	if err := tableEngine.StartRound(); err != nil {
		return nil, err
	}

	if err := tableEngine.SubmitBets(round.CollectBets()); err != nil {
		return nil, err
	}

	if round.AutoFix {
		if _, err := tableEngine.AutoFixBets(); err != nil {
			return nil, err
		}
	}

	return tableEngine.SettleRound(round.Outcome())
}
