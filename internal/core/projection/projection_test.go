package projection

import (
	"slices"
	"testing"

	kit "github.com/baking-bad/tzkt-sub003/internal/platform/testkit"
)

func testSchema() *Schema {
	return NewSchema(
		Field{Name: "id", Columns: []string{"Id"}, Type: TypeInt},
		Field{Name: "level", Columns: []string{"Level"}, Type: TypeLevel},
		Field{Name: "timestamp", Columns: []string{"Level"}, Type: TypeTimestamp},
		Field{Name: "quote", Columns: []string{"Level"}, Type: TypeQuote, Subs: []string{"usd", "eur"}},
		Field{Name: "sender", Columns: []string{"SenderId"}, Type: TypeAccount, Subs: []string{"alias", "address"}},
		Field{Name: "parameter", Columns: []string{"Entrypoint", "RawParameters"}, Type: TypeParameter, Subs: []string{"entrypoint", "value"}},
	)
}

func TestResolve(t *testing.T) {
	s := testSchema()
	cases := []struct {
		name   string
		spec   Spec
		fields []string
		cols   []string
	}{
		{"single", Spec{"level"}, []string{"level"}, []string{"Level"}},
		{"dedup same field", Spec{"level", "level"}, []string{"level"}, []string{"Level"}},
		{"derived share level", Spec{"timestamp", "level", "quote"}, []string{"timestamp", "level", "quote"}, []string{"Level"}},
		{"dotted reuses column", Spec{"sender.alias", "sender"}, []string{"sender.alias", "sender"}, []string{"SenderId"}},
		{"unknown dropped", Spec{"madeUpField", "id"}, []string{"id"}, []string{"Id"}},
		{"unknown sub dropped", Spec{"sender.balance"}, nil, nil},
		{"case folded", Spec{"Sender", "LEVEL"}, []string{"Sender", "LEVEL"}, []string{"SenderId", "Level"}},
		{"multi column", Spec{"parameter.entrypoint"}, []string{"parameter.entrypoint"}, []string{"Entrypoint", "RawParameters"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sel := s.Resolve(c.spec)
			var names []string
			for _, f := range sel.Fields {
				names = append(names, f.Name)
			}
			if !slices.Equal(names, c.fields) {
				t.Fatalf("fields = %v, want %v", names, c.fields)
			}
			if !slices.Equal(sel.Columns, c.cols) {
				t.Fatalf("columns = %v, want %v", sel.Columns, c.cols)
			}
		})
	}
}

func TestResolveAllUnknownIsEmpty(t *testing.T) {
	sel := testSchema().Resolve(Spec{"madeUpField", "another.one"})
	if !sel.Empty() || len(sel.Fields) != 0 {
		t.Fatalf("expected empty selection, got %+v", sel)
	}
}

func TestNative(t *testing.T) {
	sel := testSchema().Native()
	want := []string{"Id", "Level", "SenderId", "Entrypoint", "RawParameters"}
	if !slices.Equal(sel.Columns, want) {
		t.Fatalf("native columns = %v, want %v", sel.Columns, want)
	}
	if len(sel.Fields) != 6 {
		t.Fatalf("native fields = %d", len(sel.Fields))
	}
}

func TestSchemaGuards(t *testing.T) {
	kit.MustPanic(t, func() {
		NewSchema(Field{Name: "id", Columns: []string{"Id"}}, Field{Name: "ID", Columns: []string{"Id"}})
	})
	kit.MustPanic(t, func() { NewSchema(Field{Name: "x"}) })

	if col, ok := testSchema().Column("parameter"); !ok || col != "Entrypoint" {
		t.Fatalf("Column(parameter) = %q %v", col, ok)
	}
}

func TestFieldsSplitsCSV(t *testing.T) {
	got := Fields("id, level", " sender.alias ", "")
	if !slices.Equal([]string(got), []string{"id", "level", "sender.alias"}) {
		t.Fatalf("Fields = %v", got)
	}
}
