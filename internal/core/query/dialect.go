package query

import (
	"fmt"
	"strings"
)

// Dialect captures the few syntax points where the backends differ
type Dialect struct {
	Name        string
	placeholder func(n int) string
	quote       func(ident string) string
}

// Placeholder renders the n-th (1-based) bind parameter
func (d Dialect) Placeholder(n int) string { return d.placeholder(n) }

// Quote renders an identifier
func (d Dialect) Quote(ident string) string { return d.quote(ident) }

var (
	// Postgres uses $n placeholders and double-quoted identifiers
	Postgres = Dialect{
		Name:        "pg",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		quote:       func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` },
	}

	// ClickHouse uses positional ? placeholders and backtick identifiers
	ClickHouse = Dialect{
		Name:        "ch",
		placeholder: func(int) string { return "?" },
		quote:       func(s string) string { return "`" + strings.ReplaceAll(s, "`", "\\`") + "`" },
	}
)

// DialectByName returns pg or ch
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "pg", "postgres", "postgresql":
		return Postgres, true
	case "ch", "clickhouse":
		return ClickHouse, true
	}
	return Dialect{}, false
}
