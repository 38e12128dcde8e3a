// Package debate is the debate index and the global-debate lifecycle
// singleton: a named set of opinions, with a distinguished global debate
// (`is_all=true`) that exists at most once and whose membership is a
// superset of every other debate's.
//
// A thin Go type wraps a narrower persistence interface, with a "lifecycle
// object" that caches a process-wide singleton's UID rather than
// representing it as ambient package state.
package debate

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/store"
)

// ErrNotFound indicates a debate ID with no matching row.
var ErrNotFound = errors.New("debate: not found")

// ErrGlobalDebate indicates an operation attempted against the global
// debate that only non-global debates permit.
var ErrGlobalDebate = errors.New("debate: operation not permitted on global debate")

// Info is the attribute set a caller sees for a debate.
type Info struct {
	ID        string
	Name      string
	Creator   string
	IsAll     bool
	CreatedAt int64
}

// MetadataStore is the narrow slice of *store.Store an Index needs, kept
// as an interface rather than depending on the concrete type directly —
// this lets tests (here and in opinionop) substitute an in-memory fake
// instead of a live database.
type MetadataStore interface {
	InsertDebate(ctx context.Context, rec store.DebateRecord) error
	RenameDebate(ctx context.Context, id, name string) error
	DeleteDebate(ctx context.Context, id string) error
	GetDebate(ctx context.Context, id string) (store.DebateRecord, error)
	GlobalDebate(ctx context.Context) (store.DebateRecord, error)
	QueryDebates(ctx context.Context, substr string, limit int) ([]store.DebateRecord, error)
	CiteInDebate(ctx context.Context, opinionID, debateID string) error
	IsMember(ctx context.Context, opinionID, debateID string) (bool, error)
	MembersOf(ctx context.Context, debateID string) ([]string, error)
}

// Index is the debate lifecycle object: it owns the metadata store's debate
// table and caches the global debate's UID once resolved, invalidated on
// re-initialisation.
type Index struct {
	metadata MetadataStore

	mu         sync.Mutex
	globalID   string
	globalSeen bool
}

// New wraps a MetadataStore in a debate Index. The global debate's UID is
// resolved lazily on first use, not eagerly here, since the store may not
// have one yet (a fresh process with no debates created). Production
// callers pass a *store.Store; tests pass an in-memory fake.
func New(metadata MetadataStore) *Index {
	return &Index{metadata: metadata}
}

var _ MetadataStore = (*store.Store)(nil)

// Reset invalidates the cached global-debate UID, forcing the next
// operation that needs it to re-resolve from the metadata store. Callers
// use this after restoring a backup or otherwise mutating debates outside
// this Index.
func (idx *Index) Reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.globalID = ""
	idx.globalSeen = false
}

// globalDebateID returns the cached global debate UID, resolving it from
// the metadata store on first call. Returns ("", nil) if no debate has
// been created yet at all (the caller creating the first-ever debate is
// responsible for making it global; see CreateDebate).
func (idx *Index) globalDebateID(ctx context.Context) (string, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.globalSeen {
		return idx.globalID, nil
	}

	rec, err := idx.metadata.GlobalDebate(ctx)
	if errors.Is(err, store.ErrNotFound) {
		idx.globalSeen = true
		idx.globalID = ""
		return "", nil
	}
	if err != nil {
		return "", apierr.Wrapf(apierr.KindStorage, "debate.Index.globalDebateID", err, "loading global debate")
	}

	idx.globalID = rec.ID
	idx.globalSeen = true
	return idx.globalID, nil
}

// IsGlobal reports whether id names the global debate.
func (idx *Index) IsGlobal(ctx context.Context, id string) (bool, error) {
	gid, err := idx.globalDebateID(ctx)
	if err != nil {
		return false, err
	}
	return gid != "" && gid == id, nil
}

// GlobalDebateID returns the global debate's UID, or "" if none has been
// created yet.
func (idx *Index) GlobalDebateID(ctx context.Context) (string, error) {
	return idx.globalDebateID(ctx)
}

// CreateDebate allocates a new debate. The first debate ever created in a
// process additionally becomes the global debate if none exists yet.
func (idx *Index) CreateDebate(ctx context.Context, name, creator string, createdAt int64) (string, error) {
	if name == "" {
		return "", apierr.New(apierr.KindValidation, "debate.CreateDebate", errors.New("name is empty"))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	makeGlobal := false
	if !idx.globalSeen {
		rec, err := idx.metadata.GlobalDebate(ctx)
		switch {
		case errors.Is(err, store.ErrNotFound):
			makeGlobal = true
		case err != nil:
			return "", apierr.Wrapf(apierr.KindStorage, "debate.CreateDebate", err, "checking global debate")
		default:
			idx.globalID = rec.ID
		}
		idx.globalSeen = true
	}

	id := uuid.New().String()
	rec := store.DebateRecord{ID: id, Name: name, Creator: creator, IsAll: makeGlobal, CreatedAt: createdAt}
	if err := idx.metadata.InsertDebate(ctx, rec); err != nil {
		return "", apierr.Wrapf(apierr.KindStorage, "debate.CreateDebate", err, "inserting debate %s", id)
	}

	if makeGlobal {
		idx.globalID = id
	}

	return id, nil
}

// DeleteDebate removes a non-global debate and its membership rows. It
// does NOT delete member opinions; only opinionop.DeleteOpinion against the
// global debate destroys a node.
func (idx *Index) DeleteDebate(ctx context.Context, id string) error {
	global, err := idx.IsGlobal(ctx, id)
	if err != nil {
		return err
	}
	if global {
		return apierr.New(apierr.KindConflict, "debate.DeleteDebate", ErrGlobalDebate)
	}

	if err := idx.metadata.DeleteDebate(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.New(apierr.KindNotFound, "debate.DeleteDebate", ErrNotFound)
		}
		return apierr.Wrapf(apierr.KindStorage, "debate.DeleteDebate", err, "deleting debate %s", id)
	}
	return nil
}

// PatchDebate renames a debate. The global debate is the distinguished
// singleton; renaming it is permitted since only deletion is restricted.
func (idx *Index) PatchDebate(ctx context.Context, id, newName string) error {
	if newName == "" {
		return apierr.New(apierr.KindValidation, "debate.PatchDebate", errors.New("name is empty"))
	}
	if err := idx.metadata.RenameDebate(ctx, id, newName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.New(apierr.KindNotFound, "debate.PatchDebate", ErrNotFound)
		}
		return apierr.Wrapf(apierr.KindStorage, "debate.PatchDebate", err, "renaming debate %s", id)
	}
	return nil
}

// QueryDebate returns debates whose name contains substr, bounded by limit,
// ordered by name.
func (idx *Index) QueryDebate(ctx context.Context, substr string, limit int) ([]Info, error) {
	recs, err := idx.metadata.QueryDebates(ctx, substr, limit)
	if err != nil {
		return nil, apierr.Wrapf(apierr.KindStorage, "debate.QueryDebate", err, "querying debates")
	}
	out := make([]Info, 0, len(recs))
	for _, r := range recs {
		out = append(out, Info{ID: r.ID, Name: r.Name, Creator: r.Creator, IsAll: r.IsAll, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

// GetDebate returns a single debate's attributes.
func (idx *Index) GetDebate(ctx context.Context, id string) (Info, error) {
	rec, err := idx.metadata.GetDebate(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Info{}, apierr.New(apierr.KindNotFound, "debate.GetDebate", ErrNotFound)
	}
	if err != nil {
		return Info{}, apierr.Wrapf(apierr.KindStorage, "debate.GetDebate", err, "getting debate %s", id)
	}
	return Info{ID: rec.ID, Name: rec.Name, Creator: rec.Creator, IsAll: rec.IsAll, CreatedAt: rec.CreatedAt}, nil
}

// CiteInDebate adds opinionID to debateID's membership, a no-op if already
// a member.
func (idx *Index) CiteInDebate(ctx context.Context, opinionID, debateID string) error {
	if err := idx.metadata.CiteInDebate(ctx, opinionID, debateID); err != nil {
		return apierr.Wrapf(apierr.KindStorage, "debate.CiteInDebate", err, "citing %s in %s", opinionID, debateID)
	}
	return nil
}

// IsMember reports whether opinionID belongs to debateID.
func (idx *Index) IsMember(ctx context.Context, opinionID, debateID string) (bool, error) {
	ok, err := idx.metadata.IsMember(ctx, opinionID, debateID)
	if err != nil {
		return false, apierr.Wrapf(apierr.KindStorage, "debate.IsMember", err, "checking %s in %s", opinionID, debateID)
	}
	return ok, nil
}

// MembersOf returns the opinion IDs belonging to debateID, sorted
// ascending for deterministic enumeration.
func (idx *Index) MembersOf(ctx context.Context, debateID string) ([]string, error) {
	ids, err := idx.metadata.MembersOf(ctx, debateID)
	if err != nil {
		return nil, apierr.Wrapf(apierr.KindStorage, "debate.MembersOf", err, "listing members of %s", debateID)
	}
	sort.Strings(ids)
	return ids, nil
}
