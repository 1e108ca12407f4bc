// Package inbox tracks interaction notifications, private conversations and
// the global unread badge of one session.
package inbox

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
)

const DefaultPageSize = 10

type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
)

type API interface {
	Overview(ctx context.Context) apiclient.Result[models.MessageOverview]
	InteractionList(ctx context.Context, page, pageSize int, category string) apiclient.Result[models.PageResult[models.InteractionMessageDTO]]
	ConversationList(ctx context.Context, page, pageSize int) apiclient.Result[models.PageResult[models.ConversationSummaryDTO]]
	MarkInteractionRead(ctx context.Context, id int64) apiclient.Result[apiclient.Empty]
	MarkAllInteractionRead(ctx context.Context) apiclient.Result[apiclient.Empty]
	ClearConversationUnread(ctx context.Context, conversationID int64) apiclient.Result[apiclient.Empty]
	DeleteConversation(ctx context.Context, conversationID int64) apiclient.Result[apiclient.Empty]
}

// Page is a read-only view of one paginated list.
type Page[T any] struct {
	List     []T       `json:"list"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Total    int       `json:"total"`
	State    LoadState `json:"state"`
	HasMore  bool      `json:"hasMore"`
}

type pagedList[T any] struct {
	items    []T
	page     int
	pageSize int
	total    int
	state    LoadState
}

func newPagedList[T any]() pagedList[T] {
	return pagedList[T]{page: 1, pageSize: DefaultPageSize, state: StateIdle}
}

func (l *pagedList[T]) view() Page[T] {
	return Page[T]{
		List:     append([]T(nil), l.items...),
		Page:     l.page,
		PageSize: l.pageSize,
		Total:    l.total,
		State:    l.state,
		HasMore:  len(l.items) < l.total,
	}
}

// apply installs a fetched page. Page 1 replaces; later pages append entries
// whose id is not loaded yet.
func (l *pagedList[T]) apply(page int, res models.PageResult[T], id func(T) int64) {
	l.total = res.Total
	l.state = StateReady
	if page <= 1 {
		l.items = append([]T(nil), res.List...)
		return
	}
	seen := make(map[int64]struct{}, len(l.items))
	for _, it := range l.items {
		seen[id(it)] = struct{}{}
	}
	for _, it := range res.List {
		if _, dup := seen[id(it)]; dup {
			continue
		}
		seen[id(it)] = struct{}{}
		l.items = append(l.items, it)
	}
}

func interactionID(m models.InteractionMessageDTO) int64  { return m.ID }
func conversationID(c models.ConversationSummaryDTO) int64 { return c.ID }

// Store is safe for concurrent use. The lock is never held across upstream
// calls, so overlapping fetches of one list resolve last-response-wins.
type Store struct {
	api API

	mu            sync.Mutex
	totalUnread   int
	interactions  pagedList[models.InteractionMessageDTO]
	conversations pagedList[models.ConversationSummaryDTO]
	observer      func(total int)
}

func New(api API) *Store {
	return &Store{
		api:           api,
		interactions:  newPagedList[models.InteractionMessageDTO](),
		conversations: newPagedList[models.ConversationSummaryDTO](),
	}
}

// OnUnreadChange registers fn to be told every new badge value. fn runs
// outside the store lock.
func (s *Store) OnUnreadChange(fn func(total int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// setUnreadLocked returns the observer to call, or nil when nothing changed.
func (s *Store) setUnreadLocked(n int) func() {
	if n < 0 {
		n = 0
	}
	if n == s.totalUnread {
		return nil
	}
	s.totalUnread = n
	if s.observer == nil {
		return nil
	}
	fn := s.observer
	return func() { fn(n) }
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}

func (s *Store) interactionUnreadLocked() int {
	n := 0
	for _, m := range s.interactions.items {
		if !m.Read {
			n++
		}
	}
	return n
}

func (s *Store) privateUnreadLocked() int {
	n := 0
	for _, c := range s.conversations.items {
		if c.UnreadCount > 0 {
			n += c.UnreadCount
		}
	}
	return n
}

// Counts is the badge breakdown.
type Counts struct {
	TotalUnread       int `json:"totalUnread"`
	InteractionUnread int `json:"interactionUnread"`
	PrivateUnread     int `json:"privateUnread"`
}

func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		TotalUnread:       s.totalUnread,
		InteractionUnread: s.interactionUnreadLocked(),
		PrivateUnread:     s.privateUnreadLocked(),
	}
}

func (s *Store) TotalUnread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalUnread
}

func (s *Store) Interactions() Page[models.InteractionMessageDTO] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interactions.view()
}

func (s *Store) Conversations() Page[models.ConversationSummaryDTO] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations.view()
}

// FetchOverview sets the badge from server truth. Lists stay as they are.
func (s *Store) FetchOverview(ctx context.Context) error {
	ov, err := s.api.Overview(ctx).Get()
	if err != nil {
		return fmt.Errorf("fetch overview: %w", err)
	}
	s.mu.Lock()
	fn := s.setUnreadLocked(ov.TotalUnread)
	s.mu.Unlock()
	notify(fn)
	return nil
}

func normalize(m models.InteractionMessageDTO) models.InteractionMessageDTO {
	m.Type = strings.ToUpper(m.Type)
	m.TargetType = strings.ToUpper(m.TargetType)
	return m
}

func (s *Store) beginInteractions() (page, pageSize int, prev LoadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.interactions.state
	s.interactions.state = StateLoading
	return s.interactions.page, s.interactions.pageSize, prev
}

// FetchInteractionMessages loads the current interaction page for category
// (all, like or comment).
func (s *Store) FetchInteractionMessages(ctx context.Context, category string) error {
	page, pageSize, prev := s.beginInteractions()
	res, err := s.api.InteractionList(ctx, page, pageSize, category).Get()
	if err != nil {
		s.mu.Lock()
		s.interactions.state = prev
		s.mu.Unlock()
		return fmt.Errorf("fetch interactions: %w", err)
	}
	for i := range res.List {
		res.List[i] = normalize(res.List[i])
	}

	s.mu.Lock()
	s.interactions.apply(page, res, interactionID)
	fn := s.setUnreadLocked(s.interactionUnreadLocked() + s.privateUnreadLocked())
	s.mu.Unlock()
	notify(fn)
	return nil
}

func (s *Store) FetchConversations(ctx context.Context) error {
	s.mu.Lock()
	page, pageSize, prev := s.conversations.page, s.conversations.pageSize, s.conversations.state
	s.conversations.state = StateLoading
	s.mu.Unlock()

	res, err := s.api.ConversationList(ctx, page, pageSize).Get()
	if err != nil {
		s.mu.Lock()
		s.conversations.state = prev
		s.mu.Unlock()
		return fmt.Errorf("fetch conversations: %w", err)
	}

	s.mu.Lock()
	s.conversations.apply(page, res, conversationID)
	fn := s.setUnreadLocked(s.interactionUnreadLocked() + s.privateUnreadLocked())
	s.mu.Unlock()
	notify(fn)
	return nil
}

// MarkInteractionRead flips one loaded message to read once the server agrees.
// Marking a read message again changes nothing.
func (s *Store) MarkInteractionRead(ctx context.Context, id int64) error {
	if err := s.api.MarkInteractionRead(ctx, id).Err(); err != nil {
		return fmt.Errorf("mark interaction %d read: %w", id, err)
	}
	s.mu.Lock()
	var fn func()
	for i := range s.interactions.items {
		m := &s.interactions.items[i]
		if m.ID != id {
			continue
		}
		if !m.Read {
			m.Read = true
			fn = s.setUnreadLocked(s.totalUnread - 1)
		}
		break
	}
	s.mu.Unlock()
	notify(fn)
	return nil
}

func (s *Store) MarkAllInteractionRead(ctx context.Context) error {
	if err := s.api.MarkAllInteractionRead(ctx).Err(); err != nil {
		return fmt.Errorf("mark all interactions read: %w", err)
	}
	s.mu.Lock()
	for i := range s.interactions.items {
		s.interactions.items[i].Read = true
	}
	fn := s.setUnreadLocked(s.privateUnreadLocked())
	s.mu.Unlock()
	notify(fn)
	return nil
}

func (s *Store) ClearConversationUnread(ctx context.Context, id int64) error {
	if err := s.api.ClearConversationUnread(ctx, id).Err(); err != nil {
		return fmt.Errorf("clear conversation %d unread: %w", id, err)
	}
	s.mu.Lock()
	var fn func()
	for i := range s.conversations.items {
		c := &s.conversations.items[i]
		if c.ID != id {
			continue
		}
		if c.UnreadCount > 0 {
			fn = s.setUnreadLocked(s.totalUnread - c.UnreadCount)
		}
		c.UnreadCount = 0
		break
	}
	s.mu.Unlock()
	notify(fn)
	return nil
}

// MarkPeerRead zeroes the unread count of the conversation with peerUserID
// after its chat was cleared elsewhere. No upstream call is made.
func (s *Store) MarkPeerRead(peerUserID int64) {
	s.mu.Lock()
	var fn func()
	for i := range s.conversations.items {
		c := &s.conversations.items[i]
		if c.PeerUserID != peerUserID {
			continue
		}
		if c.UnreadCount > 0 {
			fn = s.setUnreadLocked(s.totalUnread - c.UnreadCount)
		}
		c.UnreadCount = 0
	}
	s.mu.Unlock()
	notify(fn)
}

// DeleteConversation removes a conversation upstream, then drops it from the
// list together with its unread count.
func (s *Store) DeleteConversation(ctx context.Context, id int64) error {
	if err := s.api.DeleteConversation(ctx, id).Err(); err != nil {
		return fmt.Errorf("delete conversation %d: %w", id, err)
	}
	s.mu.Lock()
	var fn func()
	items := s.conversations.items
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if items[i].UnreadCount > 0 {
			fn = s.setUnreadLocked(s.totalUnread - items[i].UnreadCount)
		}
		s.conversations.items = append(items[:i:i], items[i+1:]...)
		if s.conversations.total > 0 {
			s.conversations.total--
		}
		break
	}
	s.mu.Unlock()
	notify(fn)
	return nil
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// SetInteractionPage selects the page the next fetch loads. pageSize <= 0
// keeps the current size.
func (s *Store) SetInteractionPage(page, pageSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions.page = clampPage(page)
	if pageSize > 0 {
		s.interactions.pageSize = pageSize
	}
}

func (s *Store) SetConversationPage(page, pageSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations.page = clampPage(page)
	if pageSize > 0 {
		s.conversations.pageSize = pageSize
	}
}

func (s *Store) HasMoreInteractions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.interactions.items) < s.interactions.total
}

func (s *Store) HasMoreConversations() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conversations.items) < s.conversations.total
}

// NextInteractionPage advances one page and fetches it. The page number is
// put back when the fetch fails.
func (s *Store) NextInteractionPage(ctx context.Context, category string) error {
	s.mu.Lock()
	prev := s.interactions.page
	s.interactions.page++
	s.mu.Unlock()

	if err := s.FetchInteractionMessages(ctx, category); err != nil {
		s.mu.Lock()
		s.interactions.page = prev
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) NextConversationPage(ctx context.Context) error {
	s.mu.Lock()
	prev := s.conversations.page
	s.conversations.page++
	s.mu.Unlock()

	if err := s.FetchConversations(ctx); err != nil {
		s.mu.Lock()
		s.conversations.page = prev
		s.mu.Unlock()
		return err
	}
	return nil
}
