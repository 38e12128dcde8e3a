package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendebate/argraph/arith"
	"github.com/opendebate/argraph/config"
	"github.com/opendebate/argraph/graph"
	"github.com/opendebate/argraph/store"
)

// fakeMetadata is an in-memory MetadataStore fake satisfying engine's
// union interface, standing in for a live database the way every
// sub-package's own tests do.
type fakeMetadata struct {
	opinions map[string]store.OpinionRecord
	links    map[string]store.LinkRecord
	debates  map[string]store.DebateRecord
	members  map[string]map[string]struct{}
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{
		opinions: make(map[string]store.OpinionRecord),
		links:    make(map[string]store.LinkRecord),
		debates:  make(map[string]store.DebateRecord),
		members:  make(map[string]map[string]struct{}),
	}
}

func (f *fakeMetadata) InsertOpinion(_ context.Context, rec store.OpinionRecord) error {
	f.opinions[rec.ID] = rec
	return nil
}

func (f *fakeMetadata) UpdateOpinionContent(_ context.Context, id, content string) error {
	rec, ok := f.opinions[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Content = content
	f.opinions[id] = rec
	return nil
}

func (f *fakeMetadata) DeleteOpinion(_ context.Context, id string) error {
	if _, ok := f.opinions[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.opinions, id)
	return nil
}

func (f *fakeMetadata) InsertLink(_ context.Context, rec store.LinkRecord) error {
	f.links[rec.ID] = rec
	return nil
}

func (f *fakeMetadata) DeleteLink(_ context.Context, id string) error {
	if _, ok := f.links[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.links, id)
	return nil
}

func (f *fakeMetadata) GetLink(_ context.Context, id string) (store.LinkRecord, error) {
	rec, ok := f.links[id]
	if !ok {
		return store.LinkRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (f *fakeMetadata) InsertDebate(_ context.Context, rec store.DebateRecord) error {
	f.debates[rec.ID] = rec
	return nil
}

func (f *fakeMetadata) RenameDebate(_ context.Context, id, name string) error {
	rec, ok := f.debates[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Name = name
	f.debates[id] = rec
	return nil
}

func (f *fakeMetadata) DeleteDebate(_ context.Context, id string) error {
	if _, ok := f.debates[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.debates, id)
	delete(f.members, id)
	return nil
}

func (f *fakeMetadata) GetDebate(_ context.Context, id string) (store.DebateRecord, error) {
	rec, ok := f.debates[id]
	if !ok {
		return store.DebateRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (f *fakeMetadata) GlobalDebate(_ context.Context) (store.DebateRecord, error) {
	for _, rec := range f.debates {
		if rec.IsAll {
			return rec, nil
		}
	}
	return store.DebateRecord{}, store.ErrNotFound
}

func (f *fakeMetadata) QueryDebates(_ context.Context, _ string, _ int) ([]store.DebateRecord, error) {
	return nil, nil
}

func (f *fakeMetadata) CiteInDebate(_ context.Context, opinionID, debateID string) error {
	if f.members[debateID] == nil {
		f.members[debateID] = make(map[string]struct{})
	}
	f.members[debateID][opinionID] = struct{}{}
	return nil
}

func (f *fakeMetadata) IsMember(_ context.Context, opinionID, debateID string) (bool, error) {
	_, ok := f.members[debateID][opinionID]
	return ok, nil
}

func (f *fakeMetadata) MembersOf(_ context.Context, debateID string) ([]string, error) {
	var ids []string
	for id := range f.members[debateID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	e := New(newFakeMetadata(), config.Propagation{MaxDepth: 256})

	globalID, err := e.CreateDebate(context.Background(), "Global", "system", 1000)
	require.NoError(t, err)

	return e, globalID
}

func TestCreateORThenCreateLinkPropagates(t *testing.T) {
	e, globalID := newTestEngine(t)
	ctx := context.Background()

	leafScore := arith.Of(0.7)
	leafID, err := e.CreateOR(ctx, "the sky is blue", "alice", globalID, &leafScore, 1001)
	require.NoError(t, err)

	parentID, err := e.CreateOR(ctx, "weather looks nice", "alice", globalID, nil, 1002)
	require.NoError(t, err)

	_, updated, err := e.CreateLink(ctx, leafID, parentID, graph.LinkSupport, "alice", 1003)
	require.NoError(t, err)
	require.Contains(t, updated, parentID)
	require.InDelta(t, 0.7, updated[parentID].Positive.Value, 1e-9)

	attrs, _, err := e.InfoOpinion(ctx, parentID, "", false)
	require.NoError(t, err)
	require.InDelta(t, 0.7, attrs.Positive.Value, 1e-9)
}

func TestDeleteDebateRejectsGlobal(t *testing.T) {
	e, globalID := newTestEngine(t)
	err := e.DeleteDebate(context.Background(), globalID)
	require.Error(t, err)
}

func TestHeadOpinionFindsRootsAndLeaves(t *testing.T) {
	e, globalID := newTestEngine(t)
	ctx := context.Background()

	leafID, err := e.CreateOR(ctx, "leaf", "alice", globalID, nil, 1001)
	require.NoError(t, err)
	rootID, err := e.CreateOR(ctx, "root", "alice", globalID, nil, 1002)
	require.NoError(t, err)

	_, _, err = e.CreateLink(ctx, leafID, rootID, graph.LinkSupport, "alice", 1003)
	require.NoError(t, err)

	leaves, err := e.HeadOpinion(ctx, globalID, false)
	require.NoError(t, err)
	require.Contains(t, leaves, leafID)

	roots, err := e.HeadOpinion(ctx, globalID, true)
	require.NoError(t, err)
	require.Contains(t, roots, rootID)
}
