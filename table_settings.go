package baccarattable

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/weedbox/baccarattable/payout"
)

type TableSetting struct {
	TableID   string           `json:"table_id"`             // 空值時自動產生
	Name      string           `json:"name"`                 // 桌次名稱
	PlayerIDs []string         `json:"player_ids"`           // 入座順序
	BuyIn     decimal.Decimal  `json:"buy_in"`               // 每位玩家起始籌碼
	BankLimit *decimal.Decimal `json:"bank_limit,omitempty"` // 輪莊上限, 未設定時等於 BuyIn (可設為 0)
	Rules     TableRules       `json:"rules"`
}

type TableRules struct {
	Mode                     payout.Mode     `json:"mode"`                        // 遊戲模式
	TiePayout                decimal.Decimal `json:"tie_payout"`                  // 和局賠率 (X:1)
	CommissionRate           decimal.Decimal `json:"commission_rate"`             // 抽水比例 (0.05 = 5%)
	SpecialPayout            decimal.Decimal `json:"special_payout"`              // Super 6 / Dragon 7 / Panda 8 賠率
	IncludeCommissionInLimit bool            `json:"include_commission_in_limit"` // 莊贏補上限時以扣水後金額計算
}

func NewDefaultTableRules(mode payout.Mode) TableRules {
	params := payout.DefaultParams(mode)
	return TableRules{
		Mode:                     mode,
		TiePayout:                params.TiePayout,
		CommissionRate:           params.CommissionRate,
		SpecialPayout:            params.SpecialPayout,
		IncludeCommissionInLimit: false,
	}
}

func (r TableRules) PayoutParams() payout.Params {
	return payout.Params{
		TiePayout:      r.TiePayout,
		CommissionRate: r.CommissionRate,
		SpecialPayout:  r.SpecialPayout,
	}
}

func (r TableRules) Validate() error {
	if err := payout.ValidateParams(r.Mode, r.PayoutParams()); err != nil {
		return fmt.Errorf("%w: %w", ErrTableConfiguration, err)
	}
	return nil
}

func (s TableSetting) Validate() error {
	if s.BuyIn.IsNegative() {
		return fmt.Errorf("%w: buy-in must not be negative", ErrTableConfiguration)
	}

	if s.BankLimit != nil && s.BankLimit.IsNegative() {
		return fmt.Errorf("%w: bank limit must not be negative", ErrTableConfiguration)
	}

	return s.Rules.Validate()
}
