package config

import (
	"testing"
	"time"

	kit "github.com/baking-bad/tzkt-sub003/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("ACTIVITY_")
	if got := c.key("MAX_LIMIT"); got != "CORE_ACTIVITY_MAX_LIMIT" {
		t.Fatalf("key() = %q", got)
	}
}

func TestMustGetters(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", " postgres://localhost/tzkt ")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "16")
	t.Setenv("SERVICE_PGSQL_BAD", "x")

	if got := c.MustString("DBURL"); got != "postgres://localhost/tzkt" {
		t.Fatalf("MustString = %q", got)
	}
	if got := c.MustInt("MAX_CONNS"); got != 16 {
		t.Fatalf("MustInt = %d", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
	kit.MustPanic(t, func() { c.Require("DBURL", "NOPE") })
}

func TestMayGetters(t *testing.T) {
	c := FromMap(map[string]string{
		"X_LIMIT":   "250",
		"X_HUGE":    "999999",
		"X_BAD":     "ten",
		"X_ON":      "true",
		"X_TIMEOUT": "1500ms",
		"X_KINDS":   " transaction, ,delegation ,",
		"X_BACKEND": "CH",
	}).Prefix("X_")

	if got := c.MayInt("LIMIT", 100); got != 250 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD", 100); got != 100 {
		t.Fatalf("MayInt bad = %d", got)
	}
	if got := c.MayIntIn("HUGE", 100, 1, 10000); got != 100 {
		t.Fatalf("MayIntIn out of range = %d", got)
	}
	if got := c.MayIntIn("LIMIT", 100, 1, 10000); got != 250 {
		t.Fatalf("MayIntIn in range = %d", got)
	}
	if !c.MayBool("ON", false) || c.MayBool("BAD", false) {
		t.Fatalf("MayBool mismatch")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 1500*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("MISSING", time.Second); got != time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
	kinds := c.MayCSV("KINDS", nil)
	if len(kinds) != 2 || kinds[0] != "transaction" || kinds[1] != "delegation" {
		t.Fatalf("MayCSV = %#v", kinds)
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := FromMap(map[string]string{"E_BACKEND": "CH", "E_BAD": "mysql"}).Prefix("E_")
	if got := c.MayEnum("BACKEND", "pg", "pg", "ch"); got != "ch" {
		t.Fatalf("MayEnum = %q, want ch", got)
	}
	if got := c.MayEnum("MISSING", "pg", "pg", "ch"); got != "pg" {
		t.Fatalf("MayEnum default = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "pg", "pg", "ch") })
}
