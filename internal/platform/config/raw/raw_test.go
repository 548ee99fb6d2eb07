package raw

import "testing"

func TestGetFromEnvWithPrefix(t *testing.T) {
	t.Setenv("CORE_ACTIVITY_BACKEND", " ch ")
	t.Setenv("LOG_LEVEL", "info")

	core := New().Prefix("CORE_").Prefix("ACTIVITY_")
	if got := core.Get("BACKEND", "pg"); got != "ch" {
		t.Fatalf("Get(BACKEND) = %q, want %q", got, "ch")
	}
	if got := core.Key("BACKEND"); got != "CORE_ACTIVITY_BACKEND" {
		t.Fatalf("Key = %q", got)
	}
	if got := core.Get("MISSING", "def"); got != "def" {
		t.Fatalf("missing should fall back, got %q", got)
	}
	if got := New().Prefix("LOG_").Get("LEVEL", ""); got != "info" {
		t.Fatalf("LOG_LEVEL = %q", got)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"A_ON":    "YES",
		"A_OFF":   "nah",
		"A_N":     " 12 ",
		"A_NEG":   "-3",
		"A_JUNK":  "1x",
		"A_BLANK": "   ",
	}).Prefix("A_")

	bools := []struct {
		key  string
		def  bool
		want bool
	}{
		{"ON", false, true},
		{"OFF", true, false},
		{"BLANK", true, true},
		{"MISSING", false, false},
	}
	for _, b := range bools {
		if got := c.GetBool(b.key, b.def); got != b.want {
			t.Fatalf("GetBool(%s) = %v, want %v", b.key, got, b.want)
		}
	}

	ints := []struct {
		key  string
		def  int
		want int
	}{
		{"N", 0, 12},
		{"NEG", 5, 5},
		{"JUNK", 9, 9},
		{"MISSING", 1, 1},
	}
	for _, i := range ints {
		if got := c.GetInt(i.key, i.def); got != i.want {
			t.Fatalf("GetInt(%s) = %d, want %d", i.key, got, i.want)
		}
	}

	if _, ok := c.Lookup("BLANK"); ok {
		t.Fatalf("whitespace-only value should count as missing")
	}
}
