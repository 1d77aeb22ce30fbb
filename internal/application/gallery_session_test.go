package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

type stubResolver struct {
	images map[string]domain.Image
	err    error
}

func (r *stubResolver) GetByIDs(ids []string) ([]domain.Image, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Image
	for _, id := range ids {
		if img, ok := r.images[id]; ok {
			out = append(out, img)
		}
	}
	return out, nil
}

func newResolver(imageIDs ...string) *stubResolver {
	r := &stubResolver{images: make(map[string]domain.Image)}
	for _, id := range imageIDs {
		r.images[id] = domain.Image{ID: id, Title: "img " + id, URL: "https://cdn.test/" + id + ".jpg"}
	}
	return r
}

func entry(id, imageID string, order int) domain.GalleryImageEntry {
	return domain.GalleryImageEntry{
		ID:      id,
		ImageID: imageID,
		Order:   order,
		Image:   domain.Image{ID: imageID},
	}
}

func entryIDs(entries []domain.GalleryImageEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func newTestSession(entries ...domain.GalleryImageEntry) *GallerySession {
	s := NewGallerySession("gallery-1", entries)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestInitializeReplacesCollection(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))

	s.Initialize([]domain.GalleryImageEntry{
		entry("g2", "i2", 0),
		entry("g3", "i3", 1),
	})

	assert.Equal(t, []string{"g2", "g3"}, entryIDs(s.Entries()))
}

func TestUpdateDescription(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))

	caption := "sunset over the bay"
	s.UpdateDescription("g2", &caption)

	entries := s.Entries()
	assert.Nil(t, entries[0].Description)
	require.NotNil(t, entries[1].Description)
	assert.Equal(t, caption, *entries[1].Description)

	// Unknown ids are a no-op, not an error.
	s.UpdateDescription("missing", &caption)
	assert.Equal(t, []string{"g1", "g2"}, entryIDs(s.Entries()))
}

func TestRemovalWorkflow(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))

	s.RequestRemoval("g1")
	state := s.State()
	require.NotNil(t, state.PendingRemovalID)
	assert.Equal(t, "g1", *state.PendingRemovalID)
	assert.True(t, state.ConfirmRemovalVisible)
	assert.Len(t, state.Entries, 2)

	assert.True(t, s.ConfirmRemoval())
	state = s.State()
	assert.Nil(t, state.PendingRemovalID)
	assert.False(t, state.ConfirmRemovalVisible)
	assert.Equal(t, []string{"g2"}, entryIDs(state.Entries))

	// Nothing pending anymore.
	assert.False(t, s.ConfirmRemoval())
}

func TestCancelRemovalKeepsEntry(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))

	s.RequestRemoval("g1")
	s.CancelRemoval()

	state := s.State()
	assert.Nil(t, state.PendingRemovalID)
	assert.False(t, state.ConfirmRemovalVisible)
	assert.Equal(t, []string{"g1", "g2"}, entryIDs(state.Entries))

	payload := s.SavePayload()
	require.Len(t, payload, 2)
	assert.Equal(t, "g1", payload[0].ID)
}

func TestConfirmRemovalToleratesConcurrentRemoval(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))

	s.RequestRemoval("g1")
	s.Initialize(nil) // entry vanished before the user confirmed

	assert.False(t, s.ConfirmRemoval())
	assert.Empty(t, s.Entries())
}

func TestBeginAndCancelDrag(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))
	before := s.Entries()

	s.BeginDrag("g1")
	state := s.State()
	require.NotNil(t, state.ActiveDragID)
	assert.Equal(t, "g1", *state.ActiveDragID)

	s.CancelDrag()
	state = s.State()
	assert.Nil(t, state.ActiveDragID)
	assert.Equal(t, before, s.Entries())
}

func TestEndDragNoOpOnSelfOrMissingTarget(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))
	before := s.Entries()

	s.BeginDrag("g1")
	assert.False(t, s.EndDrag("g1", "g1"))
	assert.Nil(t, s.State().ActiveDragID)
	assert.Equal(t, before, s.Entries())

	assert.False(t, s.EndDrag("g1", ""))
	assert.Equal(t, before, s.Entries())

	// Either end removed mid-drag aborts quietly.
	assert.False(t, s.EndDrag("g1", "gone"))
	assert.False(t, s.EndDrag("gone", "g2"))
	assert.Equal(t, before, s.Entries())
}

func TestEndDragStableRelocation(t *testing.T) {
	s := newTestSession(
		entry("A", "i1", 0),
		entry("B", "i2", 1),
		entry("C", "i3", 2),
		entry("D", "i4", 3),
	)

	assert.True(t, s.EndDrag("A", "C"))

	entries := s.Entries()
	assert.Equal(t, []string{"B", "C", "A", "D"}, entryIDs(entries))
	for i, e := range entries {
		assert.Equal(t, i, e.Order)
	}
}

func TestEndDragBackwardsMove(t *testing.T) {
	s := newTestSession(
		entry("A", "i1", 0),
		entry("B", "i2", 1),
		entry("C", "i3", 2),
	)

	assert.True(t, s.EndDrag("C", "A"))
	assert.Equal(t, []string{"C", "A", "B"}, entryIDs(s.Entries()))
}

func TestEndDragPreservesNumberingWhenMoveLandsInPlace(t *testing.T) {
	// Numbering that already disagrees with positions, as after a prior
	// unsaved permutation: the move puts every entry back on its own
	// order value, so nothing is restamped and no change is reported.
	s := newTestSession(
		entry("X", "i1", 1),
		entry("Y", "i2", 0),
		entry("Z", "i3", 2),
	)

	assert.False(t, s.EndDrag("X", "Y"))

	entries := s.Entries()
	assert.Equal(t, []string{"Y", "X", "Z"}, entryIDs(entries))
	assert.Equal(t, 0, entries[0].Order)
	assert.Equal(t, 1, entries[1].Order)
	assert.Equal(t, 2, entries[2].Order)
}

func TestEndDragStampsSparseNumbering(t *testing.T) {
	s := newTestSession(
		entry("A", "i1", 10),
		entry("B", "i2", 20),
		entry("C", "i3", 30),
	)

	assert.True(t, s.EndDrag("A", "B"))

	entries := s.Entries()
	assert.Equal(t, []string{"B", "A", "C"}, entryIDs(entries))
	for i, e := range entries {
		assert.Equal(t, i, e.Order)
	}
}

func TestStageImagesAppendsWithTempIDs(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))

	assert.True(t, s.StageImages([]string{"i3", "i4"}, newResolver("i3", "i4")))

	entries := s.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "temp-1700000000000-0", entries[2].ID)
	assert.Equal(t, "temp-1700000000000-1", entries[3].ID)
	assert.True(t, entries[2].IsTemp())
	assert.Equal(t, "i3", entries[2].ImageID)
	assert.Equal(t, 2, entries[2].Order)
	assert.Equal(t, 3, entries[3].Order)
	assert.Nil(t, entries[2].Description)

	state := s.State()
	assert.True(t, state.ToastVisible)
	assert.Equal(t, "Added 2 images to gallery", state.ToastMessage)
}

func TestStageImagesDropsDuplicates(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0), entry("g2", "i2", 1))

	// i2 is already present, only i3 lands, singular toast.
	assert.True(t, s.StageImages([]string{"i2", "i3"}, newResolver("i2", "i3")))

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "i3", entries[2].ImageID)
	assert.Equal(t, 2, entries[2].Order)

	state := s.State()
	assert.Equal(t, "Added 1 image to gallery", state.ToastMessage)
}

func TestStageImagesAllDuplicates(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))

	assert.False(t, s.StageImages([]string{"i1"}, newResolver("i1")))

	assert.Len(t, s.Entries(), 1)
	state := s.State()
	assert.True(t, state.ToastVisible)
	assert.Equal(t, "Selected images are already in the gallery", state.ToastMessage)
}

func TestStageImagesDuplicateWithinBatch(t *testing.T) {
	s := newTestSession()

	assert.True(t, s.StageImages([]string{"i1", "i1"}, newResolver("i1")))

	assert.Len(t, s.Entries(), 1)
}

func TestStageImagesUniquenessAcrossCalls(t *testing.T) {
	s := newTestSession()
	resolver := newResolver("i1", "i2", "i3")

	s.StageImages([]string{"i1", "i2"}, resolver)
	s.StageImages([]string{"i2", "i3"}, resolver)
	s.StageImages([]string{"i1", "i3"}, resolver)

	seen := make(map[string]bool)
	for _, e := range s.Entries() {
		assert.False(t, seen[e.ImageID], "duplicate imageId %s", e.ImageID)
		seen[e.ImageID] = true
	}
	assert.Len(t, s.Entries(), 3)
}

func TestStageImagesSkipsResolverMisses(t *testing.T) {
	s := newTestSession()

	// i9 resolves to nothing; the rest of the batch still lands.
	assert.True(t, s.StageImages([]string{"i1", "i9"}, newResolver("i1")))

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "i1", entries[0].ImageID)
	assert.Equal(t, "Added 1 image to gallery", s.State().ToastMessage)
}

func TestStageImagesResolverFailure(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))

	resolver := &stubResolver{err: fmt.Errorf("connection refused")}
	assert.False(t, s.StageImages([]string{"i2"}, resolver))

	assert.Equal(t, []string{"g1"}, entryIDs(s.Entries()))
	state := s.State()
	assert.True(t, state.ToastVisible)
	assert.Equal(t, "Failed to load selected images", state.ToastMessage)
}

func TestStageImagesNothingResolves(t *testing.T) {
	s := newTestSession()

	assert.False(t, s.StageImages([]string{"i9"}, newResolver()))

	assert.Empty(t, s.Entries())
	assert.Equal(t, "Failed to load selected images", s.State().ToastMessage)
}

func TestStageImagesStartsAfterCurrentMax(t *testing.T) {
	// Sparse numbering inherited from Initialize: new entries continue
	// after the max, not after the length.
	s := newTestSession(entry("g1", "i1", 5), entry("g2", "i2", 9))

	s.StageImages([]string{"i3"}, newResolver("i3"))

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 10, entries[2].Order)
}

func TestDismissToast(t *testing.T) {
	s := newTestSession()
	s.StageImages([]string{"i9"}, newResolver())
	require.True(t, s.State().ToastVisible)

	s.DismissToast()
	assert.False(t, s.State().ToastVisible)
}

func TestToastLastWriteWins(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))

	s.StageImages([]string{"i1"}, newResolver("i1"))
	assert.Equal(t, "Selected images are already in the gallery", s.State().ToastMessage)

	s.StageImages([]string{"i2"}, newResolver("i2"))
	assert.Equal(t, "Added 1 image to gallery", s.State().ToastMessage)
}

func TestSavePayloadDerivesContiguousOrder(t *testing.T) {
	s := newTestSession(
		entry("g1", "i1", 0),
		entry("g2", "i2", 1),
		entry("g3", "i3", 2),
	)

	s.RequestRemoval("g2")
	require.True(t, s.ConfirmRemoval())

	payload := s.SavePayload()
	require.Len(t, payload, 2)
	for i, item := range payload {
		assert.Equal(t, i, item.Order)
	}
	assert.Equal(t, "g1", payload[0].ID)
	assert.Equal(t, "g3", payload[1].ID)
}

func TestSavePayloadBranchesOnTempID(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))
	s.StageImages([]string{"i2"}, newResolver("i2"))

	payload := s.SavePayload()
	require.Len(t, payload, 2)

	assert.Equal(t, "g1", payload[0].ID)
	assert.Equal(t, "i1", payload[0].ImageID)

	// Temporary entries ship without an id so the server creates the
	// join record from the image id.
	assert.Empty(t, payload[1].ID)
	assert.Equal(t, "i2", payload[1].ImageID)
	assert.Equal(t, 1, payload[1].Order)
}

func TestSaveEchoResolvesTempIDs(t *testing.T) {
	s := newTestSession(entry("g1", "i1", 0))
	s.StageImages([]string{"i2"}, newResolver("i2"))

	// Server response after a successful save: permanent ids only.
	s.Initialize([]domain.GalleryImageEntry{
		entry("g1", "i1", 0),
		entry("g2", "i2", 1),
	})

	for _, e := range s.Entries() {
		assert.False(t, e.IsTemp())
	}
}
