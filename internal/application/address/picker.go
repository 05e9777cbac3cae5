// Package address drives the cascading province, regency, district and
// village selection for one visitor.
package address

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/domain/shared"
)

// SlotKey is the KV key the selection is stored under, per session.
const SlotKey = "pupuk_address_cache"

// ErrUnknownRegion is returned when the selected id is not in the level's
// current collection.
var ErrUnknownRegion = shared.NewDomainError("UNKNOWN_REGION", "Region is not available for selection")

// Status of one level's collection.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
)

// LevelView is the read model of one level.
type LevelView struct {
	Level    string        `json:"level"`
	Status   Status        `json:"status"`
	Options  []region.Node `json:"options"`
	Selected *region.Node  `json:"selected,omitempty"`
}

// View is the read model of the whole picker.
type View struct {
	Selection region.Selection `json:"selection"`
	Complete  bool             `json:"complete"`
	// Focus names the level that most recently became ready.
	Focus  string      `json:"focus,omitempty"`
	Levels []LevelView `json:"levels"`
}

type levelState struct {
	status  Status
	options []region.Node
}

// Picker owns the live selection. Every fetch is tagged with the
// generation current when it started; a result whose generation is no
// longer current is dropped.
type Picker struct {
	catalog region.Catalog
	slot    shared.Slot[region.Selection]
	logger  *zap.Logger
	focus   func(region.Level)
	base    context.Context

	mu         sync.Mutex
	selection  region.Selection
	levels     [4]levelState
	focused    string
	generation uint64
	inflight   sync.WaitGroup

	// saveMu orders writes to the slot.
	saveMu    sync.Mutex
	activated sync.Once
}

// Option configures a Picker.
type Option func(*Picker)

// WithFocusHint registers fn to be told which level just became ready.
func WithFocusHint(fn func(region.Level)) Option {
	return func(p *Picker) { p.focus = fn }
}

// WithBaseContext sets the context background fetches run under. Fetches
// are not tied to the request that triggered them.
func WithBaseContext(ctx context.Context) Option {
	return func(p *Picker) { p.base = ctx }
}

// NewPicker creates an empty picker. Call Activate (or Init) to load
// provinces and restore a stored selection.
func NewPicker(catalog region.Catalog, slot shared.Slot[region.Selection], logger *zap.Logger, opts ...Option) *Picker {
	p := &Picker{
		catalog: catalog,
		slot:    slot,
		logger:  logger,
		focus:   func(region.Level) {},
		base:    context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Activate runs Init on first use and does nothing afterwards. Callers
// racing the first activation wait for it to finish.
func (p *Picker) Activate(ctx context.Context) {
	p.activated.Do(func() { p.Init(ctx) })
}

// Init fetches provinces and replays a stored selection level by level.
// Replay stops at the first level whose stored id is missing from the
// freshly fetched collection; that level and the ones below stay empty.
// It returns whatever part of the selection was restored.
func (p *Picker) Init(ctx context.Context) region.Selection {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.selection = region.Selection{}
	p.focused = ""
	for i := range p.levels {
		p.levels[i] = levelState{status: StatusEmpty}
	}
	p.levels[region.LevelProvince].status = StatusLoading
	p.mu.Unlock()

	stored, ok, err := p.slot.Load(ctx)
	if err != nil {
		p.logger.Warn("Stored address unreadable, ignoring", zap.String("key", p.slot.Key()), zap.Error(err))
		ok = false
	}
	if ok && !stored.IsConsistent() {
		p.logger.Warn("Stored address has gaps, ignoring", zap.String("key", p.slot.Key()))
		ok = false
	}

	level, parentID := region.LevelProvince, ""
	for {
		nodes := region.List(ctx, p.catalog, level, parentID)
		if !p.applyFetch(gen, level, nodes) {
			break
		}
		if !ok {
			break
		}
		id := stored.At(level).ID
		if id == "" {
			break
		}
		node, found := region.Find(nodes, id)
		if !found {
			p.logger.Debug("Stored region no longer listed, restore stops",
				zap.Stringer("level", level), zap.String("id", id))
			break
		}

		p.mu.Lock()
		if p.generation != gen {
			p.mu.Unlock()
			break
		}
		p.selection.Set(level, node)
		next, hasNext := level.Next()
		if hasNext {
			p.levels[next].status = StatusLoading
		}
		p.mu.Unlock()

		if !hasNext {
			break
		}
		level, parentID = next, node.ID
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// A level left loading by an interrupted replay is reset.
	for i := range p.levels {
		if p.levels[i].status == StatusLoading && p.generation == gen {
			p.levels[i].status = StatusEmpty
		}
	}
	return p.selection
}

// Select records id at level, clears every level below and, unless level is
// the village, starts loading the child collection in the background. The
// selection is saved after the change; a save error is returned but the
// change stays applied. The returned selection is the one that was saved,
// which includes any change that landed while the save waited its turn.
func (p *Picker) Select(ctx context.Context, level region.Level, id string) (region.Selection, error) {
	if !level.IsValid() {
		return region.Selection{}, shared.ErrInvalidInput.Wrap(fmt.Errorf("unknown level %d", level))
	}

	p.mu.Lock()
	state := p.levels[level]
	node, found := region.Find(state.options, id)
	if state.status != StatusReady || !found {
		p.mu.Unlock()
		return region.Selection{}, ErrUnknownRegion.Wrap(fmt.Errorf("%s %q", level, id))
	}

	p.selection.Set(level, node)
	for l := level + 1; l.IsValid(); l++ {
		p.levels[l] = levelState{status: StatusEmpty}
	}
	p.generation++
	gen := p.generation
	next, hasNext := level.Next()
	if hasNext {
		p.levels[next].status = StatusLoading
		p.inflight.Add(1)
		go p.fetch(gen, next, node.ID)
	}
	p.mu.Unlock()

	return p.persist(ctx)
}

// persist saves the live selection. The snapshot is taken after saveMu is
// held, so the last completed write always carries the latest change.
func (p *Picker) persist(ctx context.Context) (region.Selection, error) {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	selection := p.Selection()
	if err := p.slot.Save(ctx, selection); err != nil {
		p.logger.Warn("Failed to persist address selection", zap.String("key", p.slot.Key()), zap.Error(err))
		return selection, err
	}
	return selection, nil
}

func (p *Picker) fetch(gen uint64, level region.Level, parentID string) {
	defer p.inflight.Done()
	nodes := region.List(p.base, p.catalog, level, parentID)
	if !p.applyFetch(gen, level, nodes) {
		p.logger.Debug("Discarding stale region result",
			zap.Stringer("level", level), zap.String("parent_id", parentID))
	}
}

// applyFetch stores nodes for level if gen is still current and fires the
// focus hint for a non-empty result. It reports whether gen was current.
func (p *Picker) applyFetch(gen uint64, level region.Level, nodes []region.Node) bool {
	p.mu.Lock()
	if p.generation != gen {
		p.mu.Unlock()
		return false
	}
	if len(nodes) == 0 {
		p.levels[level] = levelState{status: StatusEmpty}
	} else {
		p.levels[level] = levelState{status: StatusReady, options: nodes}
		p.focused = level.String()
	}
	p.mu.Unlock()

	if len(nodes) > 0 {
		p.focus(level)
	}
	return true
}

// Wait blocks until background fetches started so far have finished or
// ctx is done.
func (p *Picker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Selection returns the current selection.
func (p *Picker) Selection() region.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection
}

// View returns the selection and every level's collection.
func (p *Picker) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := View{
		Selection: p.selection,
		Complete:  p.selection.IsComplete(),
		Focus:     p.focused,
		Levels:    make([]LevelView, 0, len(p.levels)),
	}
	for _, level := range region.Levels {
		st := p.levels[level]
		lv := LevelView{
			Level:   level.String(),
			Status:  st.status,
			Options: append([]region.Node{}, st.options...),
		}
		if sel := p.selection.At(level); sel.ID != "" {
			lv.Selected = &sel
		}
		v.Levels = append(v.Levels, lv)
	}
	return v
}
