package debate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendebate/argraph/apierr"
	"github.com/opendebate/argraph/store"
)

// fakeStore is an in-memory MetadataStore, standing in for a live database
// connection the way debate.go's doc comment describes (no SQL-mock
// library is available in this module's dependency set; see store/doc.go).
type fakeStore struct {
	debates map[string]store.DebateRecord
	members map[string]map[string]struct{} // debateID -> opinionID set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		debates: make(map[string]store.DebateRecord),
		members: make(map[string]map[string]struct{}),
	}
}

func (f *fakeStore) InsertDebate(_ context.Context, rec store.DebateRecord) error {
	f.debates[rec.ID] = rec
	return nil
}

func (f *fakeStore) RenameDebate(_ context.Context, id, name string) error {
	rec, ok := f.debates[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Name = name
	f.debates[id] = rec
	return nil
}

func (f *fakeStore) DeleteDebate(_ context.Context, id string) error {
	if _, ok := f.debates[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.debates, id)
	delete(f.members, id)
	return nil
}

func (f *fakeStore) GetDebate(_ context.Context, id string) (store.DebateRecord, error) {
	rec, ok := f.debates[id]
	if !ok {
		return store.DebateRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) GlobalDebate(_ context.Context) (store.DebateRecord, error) {
	for _, rec := range f.debates {
		if rec.IsAll {
			return rec, nil
		}
	}
	return store.DebateRecord{}, store.ErrNotFound
}

func (f *fakeStore) QueryDebates(_ context.Context, substr string, limit int) ([]store.DebateRecord, error) {
	var out []store.DebateRecord
	for _, rec := range f.debates {
		if len(out) >= limit {
			break
		}
		if substr == "" || contains(rec.Name, substr) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) CiteInDebate(_ context.Context, opinionID, debateID string) error {
	if f.members[debateID] == nil {
		f.members[debateID] = make(map[string]struct{})
	}
	f.members[debateID][opinionID] = struct{}{}
	return nil
}

func (f *fakeStore) IsMember(_ context.Context, opinionID, debateID string) (bool, error) {
	_, ok := f.members[debateID][opinionID]
	return ok, nil
}

func (f *fakeStore) MembersOf(_ context.Context, debateID string) ([]string, error) {
	var ids []string
	for id := range f.members[debateID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestFirstDebateCreatedBecomesGlobal(t *testing.T) {
	idx := New(newFakeStore())
	ctx := context.Background()

	id, err := idx.CreateDebate(ctx, "Climate policy", "alice", 1000)
	require.NoError(t, err)

	global, err := idx.IsGlobal(ctx, id)
	require.NoError(t, err)
	require.True(t, global)
}

func TestSecondDebateIsNotGlobal(t *testing.T) {
	idx := New(newFakeStore())
	ctx := context.Background()

	first, err := idx.CreateDebate(ctx, "First", "alice", 1000)
	require.NoError(t, err)
	second, err := idx.CreateDebate(ctx, "Second", "bob", 1001)
	require.NoError(t, err)

	firstGlobal, err := idx.IsGlobal(ctx, first)
	require.NoError(t, err)
	require.True(t, firstGlobal)

	secondGlobal, err := idx.IsGlobal(ctx, second)
	require.NoError(t, err)
	require.False(t, secondGlobal)
}

func TestDeleteGlobalDebateRejected(t *testing.T) {
	idx := New(newFakeStore())
	ctx := context.Background()

	id, err := idx.CreateDebate(ctx, "Global one", "alice", 1000)
	require.NoError(t, err)

	err = idx.DeleteDebate(ctx, id)
	require.Error(t, err)
	require.True(t, apierr.Is(err, apierr.KindConflict))
}

func TestDeleteNonGlobalDebateSucceeds(t *testing.T) {
	idx := New(newFakeStore())
	ctx := context.Background()

	_, err := idx.CreateDebate(ctx, "Global one", "alice", 1000)
	require.NoError(t, err)
	second, err := idx.CreateDebate(ctx, "Side debate", "bob", 1001)
	require.NoError(t, err)

	require.NoError(t, idx.DeleteDebate(ctx, second))

	_, err = idx.GetDebate(ctx, second)
	require.True(t, apierr.Is(err, apierr.KindNotFound))
}

func TestCiteInDebateIsIdempotent(t *testing.T) {
	idx := New(newFakeStore())
	ctx := context.Background()

	id, err := idx.CreateDebate(ctx, "Global", "alice", 1000)
	require.NoError(t, err)

	require.NoError(t, idx.CiteInDebate(ctx, "op-1", id))
	require.NoError(t, idx.CiteInDebate(ctx, "op-1", id))

	members, err := idx.MembersOf(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"op-1"}, members)
}

func TestGlobalDebateIDEmptyBeforeAnyDebate(t *testing.T) {
	idx := New(newFakeStore())
	ctx := context.Background()

	id, err := idx.GlobalDebateID(ctx)
	require.NoError(t, err)
	require.Empty(t, id)
}
