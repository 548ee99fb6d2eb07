package kinds

import (
	p "github.com/baking-bad/tzkt-sub003/internal/core/projection"
)

var (
	accountSubs = []string{"alias", "address"}
	quoteSubs   = []string{"btc", "eur", "usd", "cny", "jpy", "krw", "eth", "gbp"}
)

func num(name, col string) p.Field  { return p.Field{Name: name, Columns: []string{col}, Type: p.TypeInt} }
func str(name, col string) p.Field  { return p.Field{Name: name, Columns: []string{col}, Type: p.TypeString} }
func flag(name, col string) p.Field { return p.Field{Name: name, Columns: []string{col}, Type: p.TypeBool} }

func account(name, col string) p.Field {
	return p.Field{Name: name, Columns: []string{col}, Type: p.TypeAccount, Subs: accountSubs}
}

// base fields every kind carries; timestamp and quote are derived from Level
func base() []p.Field {
	return []p.Field{
		num("id", KeyColumn),
		{Name: "level", Columns: []string{"Level"}, Type: p.TypeLevel},
		{Name: "timestamp", Columns: []string{"Level"}, Type: p.TypeTimestamp},
		{Name: "quote", Columns: []string{"Level"}, Type: p.TypeQuote, Subs: quoteSubs},
	}
}

// operation fields: base plus the operation group hash
func operation(extra ...p.Field) []p.Field {
	return append(append(base(), str("hash", "OpHash")), extra...)
}

// manager operation fields: fee, gas and storage accounting paid by the sender
func manager(extra ...p.Field) []p.Field {
	fs := operation(
		account("sender", "SenderId"),
		num("counter", "Counter"),
		num("gasLimit", "GasLimit"),
		num("gasUsed", "GasUsed"),
		num("storageLimit", "StorageLimit"),
		num("bakerFee", "BakerFee"),
		p.Field{Name: "status", Columns: []string{"Status"}, Type: p.TypeStatus},
	)
	return append(fs, extra...)
}

// rollup operation fields: manager plus the rollup account and storage fees
func rollup(rollupCol string, extra ...p.Field) []p.Field {
	fs := manager(
		account("rollup", rollupCol),
		num("storageUsed", "StorageUsed"),
		num("storageFee", "StorageFee"),
	)
	return append(fs, extra...)
}

var (
	sortBase    = []string{"id", "level"}
	sortManager = []string{"id", "level", "gasUsed", "bakerFee"}
)

func sortWith(base []string, extra ...string) []string {
	return append(append([]string{}, base...), extra...)
}
