package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/baking-bad/tzkt-sub003/internal/core/kinds"
	"github.com/baking-bad/tzkt-sub003/internal/core/projection"
	"github.com/baking-bad/tzkt-sub003/internal/core/query"
	"github.com/baking-bad/tzkt-sub003/internal/modkit"
	"github.com/baking-bad/tzkt-sub003/internal/modkit/module"
	"github.com/baking-bad/tzkt-sub003/internal/modkit/repokit"
	"github.com/baking-bad/tzkt-sub003/internal/platform/config"
	"github.com/baking-bad/tzkt-sub003/internal/platform/logger"
	"github.com/baking-bad/tzkt-sub003/internal/platform/store"
	dom "github.com/baking-bad/tzkt-sub003/internal/services/activity/domain"
	actmod "github.com/baking-bad/tzkt-sub003/internal/services/activity/module"
)

func main() {
	var (
		accountsStr = flag.String("accounts", "", "comma separated account ids (required)")
		kindsStr    = flag.String("kinds", "", "comma separated kinds, empty for all")
		rolesStr    = flag.String("roles", "", "comma separated roles, empty for all")
		selectStr   = flag.String("select", "", "comma separated output fields, empty for native")
		sortStr     = flag.String("sort", "desc", "asc or desc by id")
		limit       = flag.Int("limit", 0, "page size, 0 for the configured default")
		offset      = flag.Int("offset", 0, "rows to skip after the merge")
		cursor      = flag.Int64("cursor", 0, "return records past this id")
		fromLevel   = flag.Int64("from-level", -1, "inclusive lower level")
		toLevel     = flag.Int64("to-level", -1, "exclusive upper level")
		sinceStr    = flag.String("since", "", "inclusive lower time, RFC3339")
		untilStr    = flag.String("until", "", "exclusive upper time, RFC3339")
	)
	flag.Parse()

	logger.Init(logger.FromEnv())
	l := logger.Named("cli")
	root := config.New()

	q, err := buildQuery(*accountsStr, *kindsStr, *rolesStr, *selectStr, *sortStr, *sinceStr, *untilStr)
	if err != nil {
		log.Fatal(err)
	}
	q.Limit, q.Offset = *limit, *offset
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cursor":
			q.Cursor = cursor
		case "from-level":
			q.Window.FromLevel = fromLevel
		case "to-level":
			q.Window.ToLevel = toLevel
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRequest(ctx, "")

	st, err := store.Open(ctx, store.ConfigFrom(root, "tzkt-activity"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	am := actmod.Build(modkit.FromStore(st, root))
	ports := module.MustPortsOf[actmod.Ports](am)

	start := time.Now()
	recs, err := ports.Activity.GetActivity(ctx, q)
	if err != nil {
		l.Error().Err(err).Str("request_id", logger.RequestID(ctx)).Msg("activity query failed")
		stop()
		os.Exit(1)
	}
	l.Info().Int("records", len(recs)).Dur("took", time.Since(start)).Msg("activity query done")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ports.Mapper.Records(recs)); err != nil {
		l.Error().Err(err).Msg("encode failed")
	}
}

func buildQuery(accounts, kindList, roles, sel, sort, since, until string) (dom.ActivityQuery, error) {
	var q dom.ActivityQuery
	for _, s := range splitCSV(accounts) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return q, err
		}
		q.Accounts = append(q.Accounts, id)
	}
	q.Kinds = splitCSV(kindList)
	if roles != "" {
		r, unknown := kinds.ParseRoles(roles)
		if len(unknown) > 0 {
			log.Printf("ignoring unknown roles %v", unknown)
		}
		q.Roles = r
	}
	if fields := splitCSV(sel); len(fields) > 0 {
		spec := projection.Fields(fields...)
		q.Select = &spec
	}
	q.Sort = query.ParseDirection(sort)

	var err error
	if q.Window.Since, err = parseTime(since); err != nil {
		return q, err
	}
	if q.Window.Until, err = parseTime(until); err != nil {
		return q, err
	}
	return q, nil
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
