package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/queue"
	"github.com/haneul-dev/virtual-gallery/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics closely
// enough for the handler contract: sentinel errors, stable id ordering
// and the same filter matching rules.

type fakeGalleryStore struct {
	nextID uint64
	items  map[uint64]*model.Gallery
	// ops records mutating calls so tests can assert ordering across
	// stores (shared with fakeHallStore via the same slice pointer).
	ops *[]string
}

func newFakeGalleryStore(ops *[]string) *fakeGalleryStore {
	return &fakeGalleryStore{items: map[uint64]*model.Gallery{}, ops: ops}
}

func (s *fakeGalleryStore) sorted(match func(*model.Gallery) bool) []*model.Gallery {
	var out []*model.Gallery
	for _, g := range s.items {
		if match(g) {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeGalleryStore) Create(_ context.Context, g *model.Gallery) error {
	s.nextID++
	g.ID = s.nextID
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	s.items[g.ID] = &cp
	return nil
}

func (s *fakeGalleryStore) GetAll(_ context.Context) ([]*model.Gallery, error) {
	return s.sorted(func(*model.Gallery) bool { return true }), nil
}

func (s *fakeGalleryStore) GetFiltered(_ context.Context, f model.GalleryFilter) ([]*model.Gallery, error) {
	all := s.sorted(func(g *model.Gallery) bool {
		if f.Category != "" && g.Category != f.Category {
			return false
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(g.Title), strings.ToLower(f.Title)) {
			return false
		}
		if f.Nickname != "" && g.Nickname != f.Nickname {
			return false
		}
		return true
	})
	start := (f.Page - 1) * f.PerPage
	if start >= len(all) {
		return nil, nil
	}
	end := start + f.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *fakeGalleryStore) GetUpcoming(_ context.Context) ([]*model.Gallery, error) {
	now := time.Now()
	return s.sorted(func(g *model.Gallery) bool { return g.StartDate.After(now) }), nil
}

func (s *fakeGalleryStore) GetTodays(_ context.Context) ([]*model.Gallery, error) {
	now := time.Now()
	return s.sorted(func(g *model.Gallery) bool {
		return !g.StartDate.After(now) && !g.EndDate.Before(now)
	}), nil
}

func (s *fakeGalleryStore) GetByID(_ context.Context, id uint64) (*model.Gallery, error) {
	g, okFound := s.items[id]
	if !okFound {
		return nil, repository.ErrGalleryNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *fakeGalleryStore) GetByAuthor(_ context.Context, authorID uint64) ([]*model.Gallery, error) {
	return s.sorted(func(g *model.Gallery) bool { return g.AuthorID == authorID }), nil
}

func (s *fakeGalleryStore) GetAuthorID(_ context.Context, id uint64) (uint64, error) {
	g, okFound := s.items[id]
	if !okFound {
		return 0, repository.ErrGalleryNotFound
	}
	return g.AuthorID, nil
}

func (s *fakeGalleryStore) UpdateByID(_ context.Context, id uint64, p *model.GalleryPatch) error {
	g, okFound := s.items[id]
	if !okFound {
		return repository.ErrGalleryNotFound
	}
	g.Title = p.Title
	g.Category = p.Category
	g.StartDate = p.StartDate
	g.EndDate = p.EndDate
	g.Description = p.Description
	g.PosterURL = p.PosterURL
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeGalleryStore) DeleteByID(_ context.Context, id uint64) error {
	if _, okFound := s.items[id]; !okFound {
		return repository.ErrGalleryNotFound
	}
	delete(s.items, id)
	*s.ops = append(*s.ops, "gallery.delete")
	return nil
}

type fakeHallStore struct {
	nextID uint64
	items  map[uint64]*model.Hall
	ops    *[]string
}

func newFakeHallStore(ops *[]string) *fakeHallStore {
	return &fakeHallStore{items: map[uint64]*model.Hall{}, ops: ops}
}

func (s *fakeHallStore) Create(_ context.Context, h *model.Hall) error {
	s.nextID++
	h.ID = s.nextID
	cp := *h
	s.items[h.ID] = &cp
	return nil
}

func (s *fakeHallStore) UpdateByID(_ context.Context, hallID uint64, p *model.HallPatch) error {
	h, okFound := s.items[hallID]
	if !okFound {
		return repository.ErrHallNotFound
	}
	h.HallName = p.HallName
	h.ImagesData = p.ImagesData
	return nil
}

func (s *fakeHallStore) GetByGalleryID(_ context.Context, galleryID uint64) ([]*model.Hall, error) {
	var out []*model.Hall
	for _, h := range s.items {
		if h.GalleryID == galleryID {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeHallStore) DeleteByGalleryID(_ context.Context, galleryID uint64) error {
	for id, h := range s.items {
		if h.GalleryID == galleryID {
			delete(s.items, id)
		}
	}
	*s.ops = append(*s.ops, "halls.delete")
	return nil
}

type fakeUserDirectory struct {
	users map[uint64]*model.User
}

func (s *fakeUserDirectory) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, okFound := s.users[id]
	if !okFound {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type fakePublisher struct {
	events []queue.GalleryDeletedEvent
}

func (p *fakePublisher) PublishGalleryDeleted(_ context.Context, ev queue.GalleryDeletedEvent) error {
	p.events = append(p.events, ev)
	return nil
}
