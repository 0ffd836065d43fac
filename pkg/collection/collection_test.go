package collection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type entry struct {
	ID   uuid.UUID
	Text string
}

func byID(id uuid.UUID) func(entry) bool {
	return func(e entry) bool { return e.ID == id }
}

func Test_InsertFront_NewestFirst(t *testing.T) {
	var seq []entry
	first := entry{ID: uuid.New(), Text: "first"}
	second := entry{ID: uuid.New(), Text: "second"}
	third := entry{ID: uuid.New(), Text: "third"}

	seq = InsertFront(seq, first)
	seq = InsertFront(seq, second)
	seq = InsertFront(seq, third)

	assert.Len(t, seq, 3)
	assert.Equal(t, "third", seq[0].Text)
	assert.Equal(t, "second", seq[1].Text)
	assert.Equal(t, "first", seq[2].Text)
}

func Test_InsertFront_DoesNotMutateInput(t *testing.T) {
	original := []entry{{ID: uuid.New(), Text: "only"}}
	out := InsertFront(original, entry{ID: uuid.New(), Text: "new"})

	assert.Len(t, original, 1)
	assert.Len(t, out, 2)
	assert.Equal(t, "only", original[0].Text)
}

func Test_RemoveFirst_RemovesExactlyOne(t *testing.T) {
	target := uuid.New()
	seq := []entry{
		{ID: uuid.New(), Text: "keep"},
		{ID: target, Text: "drop"},
		{ID: uuid.New(), Text: "keep too"},
	}

	out, removed := RemoveFirst(seq, byID(target))

	assert.True(t, removed)
	assert.Len(t, out, 2)
	assert.Equal(t, "keep", out[0].Text)
	assert.Equal(t, "keep too", out[1].Text)
}

func Test_RemoveFirst_MissingIDIsNoOp(t *testing.T) {
	seq := []entry{{ID: uuid.New(), Text: "a"}, {ID: uuid.New(), Text: "b"}}

	out, removed := RemoveFirst(seq, byID(uuid.New()))

	assert.False(t, removed)
	assert.Equal(t, seq, out)
}

func Test_Add_RejectsDuplicate(t *testing.T) {
	member := uuid.New()
	set := []uuid.UUID{member}
	isMember := func(id uuid.UUID) bool { return id == member }

	out, err := Add(set, isMember, member)

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Len(t, out, 1)
}

func Test_Remove_RejectsAbsent(t *testing.T) {
	member := uuid.New()
	var set []uuid.UUID

	out, err := Remove(set, func(id uuid.UUID) bool { return id == member })

	assert.ErrorIs(t, err, ErrAbsent)
	assert.Empty(t, out)
}

func Test_AddThenRemove_RestoresOriginal(t *testing.T) {
	existing := uuid.New()
	newcomer := uuid.New()
	set := []uuid.UUID{existing}
	is := func(target uuid.UUID) func(uuid.UUID) bool {
		return func(id uuid.UUID) bool { return id == target }
	}

	set, err := Add(set, is(newcomer), newcomer)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{newcomer, existing}, set)

	set, err = Remove(set, is(newcomer))
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{existing}, set)
}
