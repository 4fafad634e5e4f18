package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"topicmatcher/internal/domain"
)

// In-memory repository fakes for service tests. IDs are assigned sequentially
// on create.

type fakeEventRepo struct {
	events map[string]*domain.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*domain.Event)}
}

func (r *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		r.nextID++
		e.ID = fmt.Sprintf("event-%d", r.nextID)
	}
	r.events[e.ID] = e
	return e
}

func (r *fakeEventRepo) Create(_ context.Context, e *domain.Event) error {
	r.add(e)
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *domain.Event) error {
	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.events[e.ID] = e
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) GetBySlug(_ context.Context, slug string) (*domain.Event, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeEventRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range ids {
		if e, ok := r.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) all() []*domain.Event {
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeEventRepo) ListAll(_ context.Context) ([]*domain.Event, error) {
	return r.all(), nil
}

func (r *fakeEventRepo) ListByStatus(_ context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.all() {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListPubliclyVisible(_ context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.all() {
		if e.Status.IsPubliclyVisible() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListExportable(_ context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.all() {
		if e.Status.AllowsExport() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListTemplates(_ context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.all() {
		if e.IsTemplate {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListNonTemplates(_ context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.all() {
		if !e.IsTemplate {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) CountByStatus(_ context.Context) (domain.EventStatusCounts, error) {
	var c domain.EventStatusCounts
	for _, e := range r.events {
		c.Total++
		switch e.Status {
		case domain.EventStatusDraft:
			c.Draft++
		case domain.EventStatusActive:
			c.Active++
		case domain.EventStatusClosed:
			c.Closed++
		case domain.EventStatusArchived:
			c.Archived++
		}
	}
	return c, nil
}

func (r *fakeEventRepo) GenerateUniqueSlug(_ context.Context, base string) (string, error) {
	taken := func(slug string) bool {
		for _, e := range r.events {
			if e.Slug == slug {
				return true
			}
		}
		return false
	}
	if !taken(base) {
		return base, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken(candidate) {
			return candidate, nil
		}
	}
}

func (r *fakeEventRepo) ApplyBulk(ctx context.Context, updates []*domain.Event, deleteIDs []string) error {
	for _, e := range updates {
		if err := r.Update(ctx, e); err != nil {
			return err
		}
	}
	for _, id := range deleteIDs {
		if err := r.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*domain.Category
	posts      *fakePostRepo
	nextID     int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *fakeCategoryRepo) add(c *domain.Category) *domain.Category {
	if c.ID == "" {
		r.nextID++
		c.ID = fmt.Sprintf("cat-%d", r.nextID)
	}
	r.categories[c.ID] = c
	return c
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	for _, existing := range r.categories {
		if existing.EventID == c.EventID && existing.Name == c.Name {
			return domain.ErrDuplicateCategoryName
		}
	}
	r.add(c)
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetByEventAndName(_ context.Context, eventID, name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.EventID == eventID && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCategoryRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.categories {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeCategoryRepo) CountByEvent(ctx context.Context, eventID string) (int, error) {
	list, _ := r.ListByEvent(ctx, eventID)
	return len(list), nil
}

func (r *fakeCategoryRepo) NextSortOrder(ctx context.Context, eventID string) (int, error) {
	max := 0
	list, _ := r.ListByEvent(ctx, eventID)
	for _, c := range list {
		if c.SortOrder > max {
			max = c.SortOrder
		}
	}
	return max + domain.SortOrderStep, nil
}

func (r *fakeCategoryRepo) CountApprovedPosts(_ context.Context, categoryID string) (int, error) {
	if r.posts == nil {
		return 0, nil
	}
	count := 0
	for _, p := range r.posts.posts {
		if p.CategoryID == categoryID && p.Status == domain.PostStatusApproved {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoryRepo) UpdateSortOrders(_ context.Context, sortOrders map[string]int) error {
	for id, order := range sortOrders {
		c, ok := r.categories[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.SortOrder = order
	}
	return nil
}

type fakePostRepo struct {
	posts  map[string]*domain.Post
	events *fakeEventRepo
	nextID int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*domain.Post)}
}

func (r *fakePostRepo) add(p *domain.Post) *domain.Post {
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("post-%d", r.nextID)
	}
	r.posts[p.ID] = p
	return p
}

func (r *fakePostRepo) Create(_ context.Context, p *domain.Post) error {
	r.add(p)
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.posts[p.ID] = p
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePostRepo) byEvent(eventID string) []*domain.Post {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakePostRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Post, error) {
	return r.byEvent(eventID), nil
}

func (r *fakePostRepo) ListByEventAndStatus(_ context.Context, eventID string, status domain.PostStatus) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.byEvent(eventID) {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListApprovedByEvent(ctx context.Context, eventID string) ([]*domain.Post, error) {
	return r.ListByEventAndStatus(ctx, eventID, domain.PostStatusApproved)
}

func (r *fakePostRepo) ListSubmittedForModeration(_ context.Context) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.Status != domain.PostStatusSubmitted {
			continue
		}
		if r.events != nil {
			e, ok := r.events.events[p.EventID]
			if !ok || e.Status != domain.EventStatusActive {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) ListRecentlyModerated(_ context.Context, limit int) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, p := range r.posts {
		if p.ModeratedAt != nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModeratedAt.After(*out[j].ModeratedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) CountByEvent(_ context.Context, eventID string) (domain.PostStatusCounts, error) {
	var c domain.PostStatusCounts
	for _, p := range r.posts {
		if p.EventID != eventID {
			continue
		}
		c.Total++
		switch p.Status {
		case domain.PostStatusSubmitted:
			c.Submitted++
		case domain.PostStatusApproved:
			c.Approved++
		case domain.PostStatusRejected:
			c.Rejected++
		}
	}
	return c, nil
}

func (r *fakePostRepo) CountByStatus(_ context.Context, status domain.PostStatus) (int, error) {
	count := 0
	for _, p := range r.posts {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) Count(_ context.Context) (int, error) {
	return len(r.posts), nil
}

type fakeInterestRepo struct {
	interests map[string]*domain.Interest
	nextID    int
}

func newFakeInterestRepo() *fakeInterestRepo {
	return &fakeInterestRepo{interests: make(map[string]*domain.Interest)}
}

func (r *fakeInterestRepo) Create(_ context.Context, i *domain.Interest) error {
	for _, existing := range r.interests {
		if existing.PostID == i.PostID && existing.Email == i.Email {
			return domain.ErrDuplicateInterest
		}
	}
	r.nextID++
	i.ID = fmt.Sprintf("interest-%d", r.nextID)
	r.interests[i.ID] = i
	return nil
}

func (r *fakeInterestRepo) ListByPost(_ context.Context, postID string) ([]*domain.Interest, error) {
	var out []*domain.Interest
	for _, i := range r.interests {
		if i.PostID == postID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeInterestRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	list, _ := r.ListByPost(ctx, postID)
	return len(list), nil
}

func (r *fakeInterestRepo) IsDuplicate(_ context.Context, postID, email string) (bool, error) {
	for _, i := range r.interests {
		if i.PostID == postID && i.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInterestRepo) Count(_ context.Context) (int, error) {
	return len(r.interests), nil
}

type fakeUserRepo struct {
	users  map[string]*domain.BackofficeUser
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.BackofficeUser)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.BackofficeUser) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.BackofficeUser) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.BackofficeUser, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.BackofficeUser, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.BackofficeUser, error) {
	out := make([]*domain.BackofficeUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeHasher prefixes instead of hashing so tests can assert on the stored value.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID, _ string, _ domain.UserRole, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

type fakeEmailService struct {
	sent []domain.WelcomeCredentialsEmailData
}

func (s *fakeEmailService) SendWelcomeCredentials(_ context.Context, data domain.WelcomeCredentialsEmailData) error {
	s.sent = append(s.sent, data)
	return nil
}

const testTimeout = 5 * time.Second
