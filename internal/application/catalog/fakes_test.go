package catalog

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pupuk/storefront/internal/domain/catalog"
	"github.com/pupuk/storefront/internal/domain/shared"
)

type memProducts struct {
	items      map[uuid.UUID]catalog.Product
	categories *memRepo[catalog.Category, *catalog.Category]
}

func newMemProducts(categories *memRepo[catalog.Category, *catalog.Category]) *memProducts {
	return &memProducts{items: map[uuid.UUID]catalog.Product{}, categories: categories}
}

func (m *memProducts) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if p.CategoryID != nil {
		p.CategoryName = m.categories.items[*p.CategoryID].Name
	}
	return &p, nil
}

func (m *memProducts) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	for id, p := range m.items {
		if p.Slug == slug {
			return m.FindByID(ctx, id)
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memProducts) List(_ context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range m.items {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.ExcludeID != nil && p.ID == *f.ExcludeID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memProducts) Save(_ context.Context, p *catalog.Product) error {
	m.items[p.ID] = *p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memProducts) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }

// memRepo backs the category, brand and supplier fakes.
type memRepo[T any, P interface {
	*T
	catalog.Entity
}] struct {
	items map[uuid.UUID]T
}

func newMemRepo[T any, P interface {
	*T
	catalog.Entity
}]() *memRepo[T, P] {
	return &memRepo[T, P]{items: map[uuid.UUID]T{}}
}

func (m *memRepo[T, P]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	v, ok := m.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &v, nil
}

func (m *memRepo[T, P]) List(context.Context) ([]T, error) {
	out := make([]T, 0, len(m.items))
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, nil
}

func (m *memRepo[T, P]) Save(_ context.Context, v *T) error {
	m.items[P(v).GetID()] = *v
	return nil
}

func (m *memRepo[T, P]) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo[T, P]) Count(context.Context) (int64, error) { return int64(len(m.items)), nil }

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

const memBase = "https://cdn.test/pupuk-images/"

func (s *memStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	return memBase + key, nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memStorage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, memBase) {
		return "", false
	}
	return strings.TrimPrefix(url, memBase), true
}
