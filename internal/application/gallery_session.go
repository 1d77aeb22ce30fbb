package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vcostin/pic-gallery-sub004/internal/domain"
)

// ImageResolver returns full image records for the ids a picker dialog
// selected. Ids that resolve to nothing are simply absent from the result.
type ImageResolver interface {
	GetByIDs(ids []string) ([]domain.Image, error)
}

// GallerySession owns the ordered image collection for one gallery editing
// session: reordering via drag, staging freshly picked images under
// temporary ids, removal behind a confirm step, and the save payload that
// ships the whole set back to persistence in one batch.
//
// Every operation is total over the in-memory state. Lookups against ids
// that no longer exist degrade to no-ops instead of errors, so a stale
// client event can never corrupt the collection. A mutex serializes the
// HTTP handlers that drive one session from concurrent requests.
type GallerySession struct {
	GalleryID string

	mu                    sync.Mutex
	entries               []domain.GalleryImageEntry
	activeDragID          string
	pendingRemovalID      string
	confirmRemovalVisible bool
	toastVisible          bool
	toastMessage          string

	now func() time.Time
}

func NewGallerySession(galleryID string, entries []domain.GalleryImageEntry) *GallerySession {
	s := &GallerySession{
		GalleryID: galleryID,
		now:       time.Now,
	}
	s.Initialize(entries)
	return s
}

// GallerySessionState is the JSON view of a session handed to clients.
type GallerySessionState struct {
	GalleryID             string                     `json:"galleryId"`
	Entries               []domain.GalleryImageEntry `json:"entries"`
	ActiveDragID          *string                    `json:"activeDragId"`
	PendingRemovalID      *string                    `json:"pendingRemovalId"`
	ConfirmRemovalVisible bool                       `json:"confirmRemovalVisible"`
	ToastVisible          bool                       `json:"toastVisible"`
	ToastMessage          string                     `json:"toastMessage"`
}

func (s *GallerySession) State() GallerySessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.GalleryImageEntry, len(s.entries))
	copy(entries, s.entries)

	return GallerySessionState{
		GalleryID:             s.GalleryID,
		Entries:               entries,
		ActiveDragID:          optionalID(s.activeDragID),
		PendingRemovalID:      optionalID(s.pendingRemovalID),
		ConfirmRemovalVisible: s.confirmRemovalVisible,
		ToastVisible:          s.toastVisible,
		ToastMessage:          s.toastMessage,
	}
}

// Initialize replaces the whole collection. Used when loading a saved
// gallery and after a successful save returns fresh server rows, which
// also resolves any temporary ids still in memory.
func (s *GallerySession) Initialize(entries []domain.GalleryImageEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]domain.GalleryImageEntry, len(entries))
	copy(s.entries, entries)
}

// Entries returns a copy of the current collection.
func (s *GallerySession) Entries() []domain.GalleryImageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.GalleryImageEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// UpdateDescription sets the per-gallery caption of one entry. Unknown
// entry ids are ignored.
func (s *GallerySession) UpdateDescription(entryID string, description *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == entryID {
			s.entries[i].Description = description
			return
		}
	}
}

// RequestRemoval arms the confirm dialog for one entry without touching
// the collection.
func (s *GallerySession) RequestRemoval(entryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingRemovalID = entryID
	s.confirmRemovalVisible = true
}

// ConfirmRemoval drops the pending entry and reports whether anything was
// actually removed. Order values are left as they are; contiguous
// numbering is re-derived at save time.
func (s *GallerySession) ConfirmRemoval() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.pendingRemovalID
	s.pendingRemovalID = ""
	s.confirmRemovalVisible = false
	if id == "" {
		return false
	}

	kept := make([]domain.GalleryImageEntry, 0, len(s.entries))
	removed := false
	for _, e := range s.entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

func (s *GallerySession) CancelRemoval() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingRemovalID = ""
	s.confirmRemovalVisible = false
}

// BeginDrag marks an entry as the active drag source. Purely
// presentational; carries no ordering semantics.
func (s *GallerySession) BeginDrag(entryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeDragID = entryID
}

// CancelDrag clears the active drag without touching the collection.
func (s *GallerySession) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeDragID = ""
}

// EndDrag drops the source entry onto the target position and reports
// whether the collection's order actually changed. An empty target or a
// drop on oneself is a cancel. The relocation is the standard array move:
// the source slides out, everything between shifts by one slot, the
// source lands at the target's original index.
//
// Order fields are only restamped when the resulting positions disagree
// with the pre-existing numbering. A permutation that lands every entry
// back on its own order value keeps the old numbers, so dirty tracking
// against the last-saved state does not see a spurious diff.
func (s *GallerySession) EndDrag(sourceID, targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeDragID = ""

	if targetID == "" || sourceID == targetID {
		return false
	}

	srcIdx, tgtIdx := -1, -1
	for i, e := range s.entries {
		switch e.ID {
		case sourceID:
			srcIdx = i
		case targetID:
			tgtIdx = i
		}
	}
	// Either end may have been removed mid-drag by a concurrent event.
	if srcIdx == -1 || tgtIdx == -1 {
		return false
	}

	moved := s.entries[srcIdx]
	rest := make([]domain.GalleryImageEntry, 0, len(s.entries)-1)
	rest = append(rest, s.entries[:srcIdx]...)
	rest = append(rest, s.entries[srcIdx+1:]...)

	next := make([]domain.GalleryImageEntry, 0, len(s.entries))
	next = append(next, rest[:tgtIdx]...)
	next = append(next, moved)
	next = append(next, rest[tgtIdx:]...)

	inPlace := true
	for i := range next {
		if next[i].Order != i {
			inPlace = false
			break
		}
	}
	if inPlace {
		s.entries = next
		return false
	}

	for i := range next {
		next[i].Order = i
	}
	s.entries = next
	return true
}

// StageImages appends entries for freshly picked images under temporary
// ids. Images already present in the collection are silently dropped;
// resolver misses for individual ids are logged and skipped so a partial
// pick still lands. Returns whether the collection was mutated.
//
// The resolver call runs outside the session lock: a slow fetch may
// interleave with drags and removals, and the append-only application
// below cannot discard those edits.
func (s *GallerySession) StageImages(imageIDs []string, resolver ImageResolver) bool {
	if len(imageIDs) == 0 {
		return false
	}

	images, err := resolver.GetByIDs(imageIDs)
	if err != nil {
		log.Error().Err(err).Str("gallery_id", s.GalleryID).Msg("failed to resolve picked images")
		s.showToast("Failed to load selected images")
		return false
	}

	resolved := make(map[string]domain.Image, len(images))
	for _, img := range images {
		resolved[img.ID] = img
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		present[e.ImageID] = true
	}

	var candidates []domain.Image
	anyResolved := false
	for _, id := range imageIDs {
		img, ok := resolved[id]
		if !ok {
			log.Warn().Str("image_id", id).Str("gallery_id", s.GalleryID).Msg("picked image no longer exists, skipping")
			continue
		}
		anyResolved = true
		if present[img.ID] {
			continue
		}
		present[img.ID] = true
		candidates = append(candidates, img)
	}

	if len(candidates) == 0 {
		if anyResolved {
			s.showToastLocked("Selected images are already in the gallery")
		} else {
			s.showToastLocked("Failed to load selected images")
		}
		return false
	}

	// New entries start at the next integer after the current maximum,
	// which tolerates sparse numbering inherited from Initialize.
	baseOrder := 0
	for _, e := range s.entries {
		if e.Order > baseOrder {
			baseOrder = e.Order
		}
	}

	nowMillis := s.now().UnixMilli()
	for i, img := range candidates {
		s.entries = append(s.entries, domain.GalleryImageEntry{
			ID:          fmt.Sprintf("%s%d-%d", domain.TempIDPrefix, nowMillis, i),
			ImageID:     img.ID,
			Description: nil,
			Order:       baseOrder + 1 + i,
			Image:       img,
		})
	}

	if len(candidates) == 1 {
		s.showToastLocked("Added 1 image to gallery")
	} else {
		s.showToastLocked(fmt.Sprintf("Added %d images to gallery", len(candidates)))
	}
	return true
}

func (s *GallerySession) DismissToast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.toastVisible = false
}

// SavePayload derives the batch sent to persistence. Order is re-stamped
// to the entry's index regardless of what was preserved in memory between
// drags; position in the list is the single source of truth.
func (s *GallerySession) SavePayload() []domain.GalleryImageSave {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := make([]domain.GalleryImageSave, 0, len(s.entries))
	for i, e := range s.entries {
		item := domain.GalleryImageSave{
			ImageID:     e.ImageID,
			Description: e.Description,
			Order:       i,
		}
		if !e.IsTemp() {
			item.ID = e.ID
		}
		payload = append(payload, item)
	}
	return payload
}

// showToast is for paths that do not already hold the session lock.
func (s *GallerySession) showToast(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showToastLocked(message)
}

// Only one toast is visible at a time; a new message supersedes a
// pending one.
func (s *GallerySession) showToastLocked(message string) {
	s.toastMessage = message
	s.toastVisible = true
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
