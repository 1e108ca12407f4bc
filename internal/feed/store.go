package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/anonto42/travel-match/gateway/internal/timeutil"
	"github.com/google/uuid"
)

const (
	SortOrderLatest = "latest"
	SortOrderHot    = "hot"
)

// API is everything the store needs from upstream.
type API interface {
	Sources
	CreateFeed(ctx context.Context, body models.CreateFeedRequest) apiclient.Result[int64]
}

// Author is the signed-in user stamped on locally published posts.
type Author interface {
	Session
	Nickname() string
}

// Post is a raw community feed entry, possibly still in flight.
type Post struct {
	models.FeedItem
	LocalID string `json:"localId,omitempty"`
	Pending bool   `json:"pending,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
}

// Store holds the unified stream plus the community page: raw feeds,
// featured notes and the search controls over them.
type Store struct {
	api    API
	author Author
	agg    *Aggregator
	now    func() time.Time

	mu        sync.RWMutex
	items     []Item
	feeds     []Post
	notes     []models.NoteSummary
	topic     string
	sortOrder string
	keyword   string
}

func NewStore(api API, author Author) *Store {
	return &Store{
		api:       api,
		author:    author,
		agg:       NewAggregator(api, author),
		now:       time.Now,
		sortOrder: SortOrderLatest,
	}
}

// Refresh replaces the unified stream with a fresh aggregation pass.
func (s *Store) Refresh(ctx context.Context) []Item {
	items := s.agg.Aggregate(ctx)
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return s.Items("all", SortOrderLatest)
}

// Items returns a filtered copy of the stream in the requested order.
func (s *Store) Items(tab, order string) []Item {
	s.mu.RLock()
	out := Filter(s.items, tab)
	s.mu.RUnlock()
	if order == SortOrderHot {
		SortHot(out)
	}
	return out
}

// LoadFeeds replaces the raw community feeds.
func (s *Store) LoadFeeds(ctx context.Context) error {
	list, err := s.api.Feeds(ctx).Get()
	if err != nil {
		return fmt.Errorf("load feeds: %w", err)
	}
	posts := make([]Post, len(list))
	for i, f := range list {
		posts[i] = Post{FeedItem: f}
	}
	s.mu.Lock()
	s.feeds = posts
	s.mu.Unlock()
	return nil
}

// LoadNotes replaces the featured notes.
func (s *Store) LoadNotes(ctx context.Context) error {
	list, err := s.api.Notes(ctx).Get()
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	s.mu.Lock()
	s.notes = list
	s.mu.Unlock()
	return nil
}

// SetTopic records the selected topic tag. Topics do not filter yet.
func (s *Store) SetTopic(topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topic = topic
}

func (s *Store) Topic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topic
}

func (s *Store) SetSortOrder(order string) {
	if order != SortOrderHot {
		order = SortOrderLatest
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortOrder = order
}

func (s *Store) SetKeyword(kw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyword = kw
}

func containsFold(s, kw string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), kw)
}

// FilteredFeeds applies keyword search on content and author name, and
// orders newest first when the sort order is latest.
func (s *Store) FilteredFeeds() []Post {
	s.mu.RLock()
	kw := strings.ToLower(strings.TrimSpace(s.keyword))
	order := s.sortOrder
	out := make([]Post, 0, len(s.feeds))
	for _, p := range s.feeds {
		if kw == "" || containsFold(p.Content, kw) || containsFold(p.AuthorName, kw) {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	if order == SortOrderLatest {
		sort.SliceStable(out, func(i, j int) bool {
			return sortTime(out[i].CreatedAt).After(sortTime(out[j].CreatedAt))
		})
	}
	return out
}

// FilteredNotes applies keyword search on title, destination and author.
func (s *Store) FilteredNotes() []models.NoteSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kw := strings.ToLower(strings.TrimSpace(s.keyword))
	out := make([]models.NoteSummary, 0, len(s.notes))
	for _, n := range s.notes {
		if kw == "" || containsFold(n.Title, kw) || containsFold(n.Destination, kw) || containsFold(n.AuthorName, kw) {
			out = append(out, n)
		}
	}
	return out
}

// PrependFeed puts a confirmed post at the head of both lists.
func (s *Store) PrependFeed(f models.FeedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds = append([]Post{{FeedItem: f}}, s.feeds...)
	s.items = append([]Item{feedItem(f)}, s.items...)
}

// PublishFeed shows the post immediately as pending, then confirms it with the
// server id or marks it failed.
func (s *Store) PublishFeed(ctx context.Context, body models.CreateFeedRequest) (Post, error) {
	f := models.FeedItem{
		Content:    body.Content,
		AuthorName: s.author.Nickname(),
		CreatedAt:  timeutil.ISO(s.now()),
	}
	if body.ImageURLsJSON != "" {
		imgs := body.ImageURLsJSON
		f.ImageURLsJSON = &imgs
	}
	if id, ok := s.author.UserID(); ok {
		f.AuthorID = &id
	}
	localID := uuid.NewString()
	post := Post{FeedItem: f, LocalID: localID, Pending: true}

	item := feedItem(f)
	item.LocalID = localID
	item.Pending = true

	s.mu.Lock()
	s.feeds = append([]Post{post}, s.feeds...)
	s.items = append([]Item{item}, s.items...)
	s.mu.Unlock()

	id, err := s.api.CreateFeed(ctx, body).Get()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feeds {
		if s.feeds[i].LocalID != localID {
			continue
		}
		s.feeds[i].Pending = false
		if err != nil {
			s.feeds[i].Failed = true
		} else {
			s.feeds[i].ID = id
		}
		post = s.feeds[i]
		break
	}
	for i := range s.items {
		if s.items[i].LocalID != localID {
			continue
		}
		s.items[i].Pending = false
		if err != nil {
			s.items[i].Failed = true
		} else {
			confirmed := *s.items[i].Feed
			confirmed.ID = id
			s.items[i].ID = id
			s.items[i].Feed = &confirmed
		}
		break
	}
	if err != nil {
		post.Pending = false
		post.Failed = true
		return post, fmt.Errorf("publish feed: %w", err)
	}
	post.ID = id
	return post, nil
}
