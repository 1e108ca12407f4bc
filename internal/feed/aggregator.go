package feed

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/metrics"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/timeutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Sources are the upstream lists the stream is built from.
type Sources interface {
	Notes(ctx context.Context) apiclient.Result[[]models.NoteSummary]
	Feeds(ctx context.Context) apiclient.Result[[]models.FeedItem]
	CompanionPosts(ctx context.Context, f models.CompanionFilter) apiclient.Result[[]models.CompanionPostSummary]
	MyRoutes(ctx context.Context) apiclient.Result[[]models.PlanResponse]
}

// Session tells the aggregator whether the private route list may be asked for.
type Session interface {
	HasValidSession() bool
	UserID() (int64, bool)
}

type Aggregator struct {
	src     Sources
	session Session
	now     func() time.Time
}

func NewAggregator(src Sources, session Session) *Aggregator {
	return &Aggregator{src: src, session: session, now: time.Now}
}

// Aggregate fetches every source concurrently and returns the merged stream
// newest first. A failing source only loses its own items.
//
// Sources fail soft inside soften, so every goroutine returns nil: Wait is
// only a join and one failure never cancels the other fetches.
func (a *Aggregator) Aggregate(ctx context.Context) []Item {
	var (
		g          errgroup.Group
		notes      []models.NoteSummary
		feeds      []models.FeedItem
		companions []models.CompanionPostSummary
		routes     []models.PlanResponse
	)
	g.Go(func() error {
		notes = soften("notes", a.src.Notes(ctx))
		return nil
	})
	g.Go(func() error {
		feeds = soften("feeds", a.src.Feeds(ctx))
		return nil
	})
	g.Go(func() error {
		companions = soften("companions", a.src.CompanionPosts(ctx, models.CompanionFilter{}))
		return nil
	})
	loggedIn := a.session.HasValidSession()
	if loggedIn {
		g.Go(func() error {
			routes = soften("routes", a.src.MyRoutes(ctx))
			return nil
		})
	}
	_ = g.Wait()

	now := a.now()
	items := make([]Item, 0, len(notes)+len(feeds)+len(companions)+len(routes))
	for _, n := range notes {
		items = append(items, noteItem(n, now))
	}
	for _, f := range feeds {
		items = append(items, feedItem(f))
	}
	for _, c := range companions {
		items = append(items, companionItem(c, now))
	}
	var author *int64
	if id, ok := a.session.UserID(); ok {
		author = &id
	}
	for _, r := range routes {
		items = append(items, routeItem(r, author, now))
	}

	SortLatest(items)
	return items
}

func soften[T any](source string, r apiclient.Result[[]T]) []T {
	v, err := r.Get()
	if err != nil {
		metrics.FeedSourceFailed(source)
		log.Warn().Err(err).Str("source", source).Msg("Feed source failed, continuing without it")
		return nil
	}
	return v
}

func sortTime(s string) time.Time {
	t, _ := timeutil.Parse(s)
	return t
}

// SortLatest orders items by createdAt descending. Equal or unparseable
// timestamps keep their relative order.
func SortLatest(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return sortTime(items[i].CreatedAt).After(sortTime(items[j].CreatedAt))
	})
}

// SortHot orders by hot score, then recency.
func SortHot(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := deref(items[i].HotScore), deref(items[j].HotScore)
		if si != sj {
			return si > sj
		}
		return sortTime(items[i].CreatedAt).After(sortTime(items[j].CreatedAt))
	})
}

// Filter narrows items to a tab. "following" has no author filter yet and
// passes everything through, as do "all" and unknown tabs.
func Filter(items []Item, tab string) []Item {
	switch Kind(tab) {
	case KindNote, KindRoute, KindCompanion, KindFeed:
	default:
		return append([]Item(nil), items...)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Type == Kind(tab) {
			out = append(out, it)
		}
	}
	return out
}
