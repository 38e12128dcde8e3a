package apierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestErrorUnwrapsToCause(t *testing.T) {
	e := New(KindNotFound, "opinionop.InfoOpinion", errBoom)
	require.True(t, errors.Is(e, errBoom))
	require.Equal(t, "opinionop.InfoOpinion: not_found: boom", e.Error())
}

func TestWrapfPreservesCause(t *testing.T) {
	e := Wrapf(KindStorage, "store.InsertOpinion", errBoom, "insert opinion %s", "op1")
	require.True(t, errors.Is(e, errBoom))
}

func TestIsChecksKind(t *testing.T) {
	e := New(KindConflict, "linkop.CreateLink", errBoom)
	require.True(t, Is(e, KindConflict))
	require.False(t, Is(e, KindValidation))
	require.False(t, Is(errBoom, KindConflict))
}

func TestRecoverable(t *testing.T) {
	require.True(t, KindValidation.Recoverable())
	require.True(t, KindNotFound.Recoverable())
	require.True(t, KindConflict.Recoverable())
	require.False(t, KindStorage.Recoverable())
	require.False(t, KindPropagation.Recoverable())
}
