package attendance

import (
	"context"
	"encoding/json"
	"log"

	"backend-roteirando/internal/auth"
	"backend-roteirando/internal/group"
	"backend-roteirando/internal/stream"
)

// Saver is the storage edge of the write path.
type Saver interface {
	SaveAttendance(ctx context.Context, groupID, tourID string, members []string, customDate string) error
}

// Broadcaster pushes live updates to consoles watching the trip.
type Broadcaster interface {
	Broadcast(tripID string, payload []byte)
}

// Writer applies a leader's attendance submission: persist, then patch the
// in-memory group so the session sees the new state before the next full
// reload.
type Writer struct {
	store Saver
	hub   Broadcaster
}

func NewWriter(store Saver, hub Broadcaster) *Writer {
	return &Writer{store: store, hub: hub}
}

// Submit validates and applies the submission. It is a no-op unless the
// acting role is user and the group is the session's own. An empty member
// list is a cancellation: the stored key is removed and any reason is
// logged for operational visibility only, not persisted. Persistence
// failures are returned to the caller so the submitting form can keep the
// user's input.
func (w *Writer) Submit(ctx context.Context, role auth.Role, bound *group.Group, tourID string, members []string, customDate, cancelReason string) error {
	if role != auth.RoleUser || bound == nil {
		return nil
	}

	if len(members) == 0 && cancelReason != "" {
		log.Printf("attendance cancelled: group=%s tour=%s reason=%q", bound.ID, tourID, cancelReason)
	}

	if err := w.store.SaveAttendance(ctx, bound.ID, tourID, members, customDate); err != nil {
		return err
	}

	applyEntry(bound, tourID, members, customDate)

	if w.hub != nil {
		payload, _ := json.Marshal(stream.Update{GroupID: bound.ID, TourID: tourID, Count: len(members)})
		w.hub.Broadcast(bound.TripID, payload)
	}
	return nil
}

// applyEntry mirrors the persisted change on the in-memory group. Deleting
// the key on an empty list keeps the zero-members-means-absent invariant;
// deleting an already-absent key is a no-op.
func applyEntry(g *group.Group, tourID string, members []string, customDate string) {
	if len(members) == 0 {
		delete(g.Attendance, tourID)
		return
	}
	if g.Attendance == nil {
		g.Attendance = map[string]json.RawMessage{}
	}
	raw, _ := json.Marshal(Entry{Members: members, CustomDate: customDate})
	g.Attendance[tourID] = raw
}
