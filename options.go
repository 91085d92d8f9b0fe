package baccarattable

type TableEngineCallbacks struct {
	OnTableUpdated      func(t *Table)
	OnTableErrorUpdated func(t *Table, err error)
	OnTableStateUpdated func(string, *Table)
	OnRoundSettled      func(t *Table, result *RoundResult)
}

func NewTableEngineCallbacks() *TableEngineCallbacks {
	return &TableEngineCallbacks{
		OnTableUpdated:      func(*Table) {},
		OnTableErrorUpdated: func(*Table, error) {},
		OnTableStateUpdated: func(string, *Table) {},
		OnRoundSettled:      func(*Table, *RoundResult) {},
	}
}

type TableEngineOptions struct {
	Interval   int // 結算後自動開下一局的秒數, 0 表示手動開局
	BetTimeout int // 下注逾時秒數, 逾時未下注的閒家自動 Pass, 0 表示不限時
}

func NewTableEngineOptions() *TableEngineOptions {
	return &TableEngineOptions{
		Interval:   0, // manual by default
		BetTimeout: 0,
	}
}
