package validate

import (
	"strings"
	"testing"

	perr "github.com/baking-bad/tzkt-sub003/internal/platform/errors"
)

type payload struct {
	Name  string   `json:"name" validate:"required,min=2"`
	Limit int      `json:"limit" validate:"min=1,max=10"`
	Tags  []string `json:"tags" validate:"dive,lowercase_tag"`
}

func init() {
	_ = Register("lowercase_tag", func(fl FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToLower(s)
	}, "{0} must be lowercase")
}

func TestStruct(t *testing.T) {
	cases := []struct {
		name  string
		in    payload
		field string
		msg   string
	}{
		{"ok", payload{Name: "ab", Limit: 3}, "", ""},
		{"required", payload{Limit: 3}, "name", "name is a required field"},
		{"short min", payload{Name: "a", Limit: 3}, "name", "name must be at least 2"},
		{"short max", payload{Name: "ab", Limit: 11}, "limit", "limit must be at most 10"},
		{"custom tag", payload{Name: "ab", Limit: 1, Tags: []string{"X"}}, "tags[0]", "tags[0] must be lowercase"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if tc.msg == "" {
				if err != nil {
					t.Fatalf("unexpected: %v", err)
				}
				return
			}
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("code = %v (%v)", perr.CodeOf(err), err)
			}
			e, _ := perr.As(err)
			if e.Field() != tc.field || err.Error() != tc.msg {
				t.Fatalf("got field=%q msg=%q", e.Field(), err.Error())
			}
		})
	}
}

func TestStructInvalidInput(t *testing.T) {
	if perr.CodeOf(Struct(42)) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("non-struct input should be an invalid argument")
	}
	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil error should be blank")
	}
}
