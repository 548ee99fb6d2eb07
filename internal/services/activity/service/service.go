// Package service implements the cross-kind activity feed
package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/core/filter"
	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
	perr "github.com/baking-bad/tzkt-sub003/internal/platform/errors"
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"

	"golang.org/x/sync/errgroup"
)

// Config for the activity service
type Config struct {
	Dialect      query.Dialect
	DefaultLimit int
	MaxLimit     int
	MaxParallel  int           // 0 = one goroutine per relevant kind
	Timeout      time.Duration // 0 = caller's deadline only
}

// Service implements domain.ActivityPort
type Service struct {
	Exec  dom.Executor
	Caps  dom.CapabilityLoader
	Times dom.TimeLookup // optional; required only for time windows
	Cfg   Config
}

var _ dom.ActivityPort = (*Service)(nil)

// New constructs the service, filling config defaults
func New(exec dom.Executor, caps dom.CapabilityLoader, times dom.TimeLookup, cfg Config) *Service {
	if cfg.Dialect.Name == "" {
		cfg.Dialect = query.Postgres
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 10000
	}
	if cfg.DefaultLimit <= 0 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(100, cfg.MaxLimit)
	}
	if cfg.MaxParallel < 0 {
		cfg.MaxParallel = 0
	}
	return &Service{Exec: exec, Caps: caps, Times: times, Cfg: cfg}
}

// GetActivity implements domain.ActivityPort
//
// Each relevant kind is queried concurrently with the request's direction, limit and cursor.
// Results are merged, ordered by identity key and truncated. The first failing sub-query cancels
// the rest and fails the call; no partial feed is returned.
func (s *Service) GetActivity(ctx context.Context, q dom.ActivityQuery) ([]dom.ActivityRecord, error) {
	if q.Limit == 0 {
		q.Limit = s.Cfg.DefaultLimit
	}
	q.Limit = min(q.Limit, s.Cfg.MaxLimit)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	window, err := s.windowClauses(q.Window)
	if err != nil {
		return nil, err
	}
	if s.Cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Cfg.Timeout)
		defer cancel()
	}

	log := logger.C(ctx)
	started := time.Now()

	selected, _ := kinds.Select(q.Kinds)
	if q.Select != nil && !projectsAny(selected, *q.Select) {
		log.Debug().Strs("select", *q.Select).Msg("activity projection resolves to nothing")
		return nil, nil
	}

	accounts := uniq(q.Accounts)
	caps, err := s.Caps.Load(ctx, accounts)
	if err != nil {
		return nil, err
	}

	tasks, skipped := s.plan(q, selected, accounts, caps, window)
	log.Debug().
		Int("kinds", len(tasks)).
		Int("skipped", skipped).
		Int("accounts", len(accounts)).
		Int("limit", q.Limit).
		Msg("activity fan-out")
	if len(tasks) == 0 {
		return nil, nil
	}

	slots := make([][]dom.ActivityRecord, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	if s.Cfg.MaxParallel > 0 {
		g.SetLimit(s.Cfg.MaxParallel)
	}
	for i, c := range tasks {
		g.Go(func() error {
			rows, err := s.Exec.Execute(gctx, c)
			if err != nil {
				return err
			}
			recs, err := toRecords(c, rows)
			if err != nil {
				return err
			}
			slots[i] = recs
			return nil
		})
	}
	err = g.Wait()
	// results that landed after the caller gave up are discarded
	if cerr := ctx.Err(); cerr != nil {
		return nil, perr.Wrap(cerr, perr.ErrorCodeCanceled, "get activity")
	}
	if err != nil {
		ev := log.Warn().Err(err)
		var se *dom.StorageError
		if errors.As(err, &se) {
			ev = ev.Str("kind", se.Kind).Bool("retryable", se.Retryable())
		}
		ev.Msg("activity sub-query failed")
		return nil, err
	}

	out := merge(slots, q.Sort)
	if q.Cursor == nil && q.Offset > 0 {
		if q.Offset >= len(out) {
			out = nil
		} else {
			out = out[q.Offset:]
		}
	}
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}

	log.Debug().
		Int("records", len(out)).
		Dur("elapsed", time.Since(started)).
		Msg("activity merged")
	return out, nil
}

// plan builds one compiled query per relevant kind
// A kind is relevant when it was requested and some account holds a requested role in it.
func (s *Service) plan(
	q dom.ActivityQuery,
	selected []*kinds.Kind,
	accounts []int64,
	caps dom.Capabilities,
	window []filter.Clause,
) ([]query.Compiled, int) {
	mask := q.RoleMask()

	// offset mode fetches offset+limit per kind and applies the offset after the merge
	page := q.Page()
	if !page.HasCursor {
		page = query.Offset(0, q.Offset+q.Limit)
	}

	var tasks []query.Compiled
	skipped := 0
	for _, k := range selected {
		group := memberships(k, mask, accounts, caps)
		if len(group) == 0 {
			skipped++
			continue
		}
		f := filter.Where(window...).WithOr(group)
		c := query.Compile(k.Source(), f, q.Select, query.ByID(q.Sort), page, s.Cfg.Dialect)
		if c.Empty() {
			skipped++
			continue
		}
		tasks = append(tasks, c)
	}
	return tasks, skipped
}

func projectsAny(ks []*kinds.Kind, spec projection.Spec) bool {
	for _, k := range ks {
		if !k.Schema.Resolve(spec).Empty() {
			return true
		}
	}
	return false
}

// memberships lists, per requested role the kind supports, the accounts holding it
func memberships(k *kinds.Kind, mask kinds.Role, accounts []int64, caps dom.Capabilities) filter.OrGroup {
	var group filter.OrGroup
	(mask & k.Supports()).Each(func(role kinds.Role) {
		var ids []int64
		for _, a := range accounts {
			if caps.HasRole(a, k.Name, role) {
				ids = append(ids, a)
			}
		}
		if len(ids) == 0 {
			return
		}
		for _, field := range k.RoleFields(role) {
			group = append(group, filter.Membership{Field: field, IDs: ids})
		}
	})
	return group
}

func (s *Service) windowClauses(w dom.Window) ([]filter.Clause, error) {
	if w.IsZero() {
		return nil, nil
	}
	var cs []filter.Clause
	if w.FromLevel != nil {
		cs = append(cs, filter.Ge("level", *w.FromLevel))
	}
	if w.ToLevel != nil {
		cs = append(cs, filter.Lt("level", *w.ToLevel))
	}
	if w.Since != nil || w.Until != nil {
		if s.Times == nil {
			return nil, perr.WithField(perr.InvalidArgf("time window needs a time lookup"), "window")
		}
		if w.Since != nil {
			cs = append(cs, filter.Ge("level", s.Times.LevelAt(*w.Since)))
		}
		if w.Until != nil {
			cs = append(cs, filter.Lt("level", s.Times.LevelAt(*w.Until)))
		}
	}
	return cs, nil
}

func toRecords(c query.Compiled, rows []query.Row) ([]dom.ActivityRecord, error) {
	out := make([]dom.ActivityRecord, 0, len(rows))
	for _, r := range rows {
		id, ok := c.Key(r)
		if !ok {
			return nil, dom.NewStorageError(c.Kind, perr.Newf(perr.ErrorCodeDB, "row without identity key"))
		}
		out = append(out, dom.ActivityRecord{
			ID:      id,
			Kind:    c.Kind,
			Payload: dom.Payload{Columns: c.Columns, Fields: c.Fields, Row: r},
		})
	}
	return out, nil
}

// merge concatenates per-kind slots and orders them by identity key
// kind name breaks ties so the order is total even if two kinds share a key
func merge(slots [][]dom.ActivityRecord, dir query.Direction) []dom.ActivityRecord {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	out := make([]dom.ActivityRecord, 0, n)
	for _, s := range slots {
		out = append(out, s...)
	}
	slices.SortFunc(out, func(a, b dom.ActivityRecord) int {
		c := cmp.Compare(a.ID, b.ID)
		if c == 0 {
			c = cmp.Compare(a.Kind, b.Kind)
		}
		if dir == query.Desc {
			return -c
		}
		return c
	})
	return out
}

func uniq(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// CompileAndExecute implements domain.ActivityPort for single-kind reads
// An empty projection returns no rows without touching storage.
func (s *Service) CompileAndExecute(
	ctx context.Context,
	kind string,
	f filter.Spec,
	proj *projection.Spec,
	sort query.Sort,
	p query.Page,
) ([]query.Row, query.Compiled, error) {
	k, ok := kinds.ByName(kind)
	if !ok {
		return nil, query.Compiled{}, perr.WithField(perr.InvalidArgf("unknown kind %q", kind), "kind")
	}
	p.Limit = s.limit(p.Limit)
	c := query.Compile(k.Source(), f, proj, sort, p, s.Cfg.Dialect)
	if len(c.Ignored) > 0 {
		logger.C(ctx).Debug().Str("kind", kind).Strs("fields", c.Ignored).Msg("ignoring unknown filter fields")
	}
	if c.Empty() {
		return nil, c, nil
	}
	rows, err := s.Exec.Execute(ctx, c)
	if err != nil {
		return nil, c, err
	}
	return rows, c, nil
}

// limit takes the default for a non-positive limit and clamps anything above MaxLimit
func (s *Service) limit(n int) int {
	if n <= 0 {
		return s.Cfg.DefaultLimit
	}
	return min(n, s.Cfg.MaxLimit)
}
