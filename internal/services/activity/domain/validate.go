package domain

import (
	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/platform/validate"
)

func init() {
	_ = validate.Register("activity_kind", func(fl validate.FieldLevel) bool {
		_, ok := kinds.ByName(fl.Field().String())
		return ok
	}, "{0} must be a known kind")
}

// Validate checks the query shape; limit bounds beyond min=1 are the service's call
func (q ActivityQuery) Validate() error { return validate.Struct(q) }
