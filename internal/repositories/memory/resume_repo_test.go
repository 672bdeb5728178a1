package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/utils"
)

func newRepo() *ResumeRepo {
	r := NewResumeRepo()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return r
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	doc := models.Resume{OwnerID: "alice", PersonalDetails: models.PersonalDetails{FullName: "Alice"}}
	id, err := repo.Create(ctx, &doc)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := repo.Get(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.PersonalDetails.FullName)
	assert.NotNil(t, got.Skills)
}

func TestOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	doc := models.Resume{OwnerID: "bob", Summary: "original"}
	id, err := repo.Create(ctx, &doc)
	require.NoError(t, err)

	summary := "hijacked"
	got, err := repo.Update(ctx, id, "alice", models.ResumePatch{Summary: &summary})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = repo.Get(ctx, id, "alice")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id, "alice"), utils.ErrNotFound)

	list, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	still, err := repo.Get(ctx, id, "bob")
	require.NoError(t, err)
	assert.Equal(t, "original", still.Summary)
}

func TestUpdate_PatchesAndBumpsTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	doc := models.Resume{OwnerID: "u", Title: "Old", Summary: "keep"}
	id, _ := repo.Create(ctx, &doc)

	title := "New"
	got, err := repo.Update(ctx, id, "u", models.ResumePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "keep", got.Summary)
	assert.Equal(t, "u", got.OwnerID)
	assert.True(t, got.UpdatedAt.After(doc.UpdatedAt))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	doc := models.Resume{OwnerID: "u"}
	id, _ := repo.Create(ctx, &doc)

	require.NoError(t, repo.Delete(ctx, id, "u"))
	assert.ErrorIs(t, repo.Delete(ctx, id, "u"), utils.ErrNotFound)
}

func TestCreate_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	a := models.Resume{ID: "same", OwnerID: "u"}
	_, err := repo.Create(ctx, &a)
	require.NoError(t, err)
	b := models.Resume{ID: "same", OwnerID: "v"}
	_, err = repo.Create(ctx, &b)
	assert.ErrorIs(t, err, utils.ErrDuplicate)
}

func TestListAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()

	for i := 0; i < 5; i++ {
		d := models.Resume{OwnerID: "u", Title: fmt.Sprintf("Resume %d", i)}
		_, err := repo.Create(ctx, &d)
		require.NoError(t, err)
	}
	other := models.Resume{OwnerID: "v", PersonalDetails: models.PersonalDetails{FullName: "Grace Hopper"}}
	_, _ = repo.Create(ctx, &other)

	items, total, err := repo.List(ctx, models.ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, items, 2)

	items, total, err = repo.List(ctx, models.ListQuery{Search: "hopper"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "v", items[0].OwnerID)

	mine, err := repo.ListByOwner(ctx, "u")
	require.NoError(t, err)
	require.Len(t, mine, 5)
	assert.Equal(t, "Resume 4", mine[0].Title)

	n, err := repo.DeleteByOwner(ctx, "u")
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
	count, _ := repo.Count(ctx)
	assert.EqualValues(t, 1, count)
}
