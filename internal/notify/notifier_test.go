package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kanbanhq/taskboard/internal/core/ports"
)

type stubMemberSource struct {
	members map[string][]string
	err     error
}

func (s *stubMemberSource) Members(_ context.Context, projectID string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.members[projectID], nil
}

func TestNotifier_BroadcastReachesEveryMember(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	alice := &fakeConn{}
	bob := &fakeConn{}
	hub.Register("u1", alice)
	hub.Register("u2", bob)

	members := &stubMemberSource{members: map[string][]string{"p1": {"u1", "u2"}}}
	notifier := NewNotifier(hub, members, zerolog.Nop())

	notifier.Broadcast(context.Background(), "p1", ports.Event{Type: ports.EventProjectUpdated})

	for name, conn := range map[string]*fakeConn{"u1": alice, "u2": bob} {
		got := conn.received()
		if len(got) != 1 || got[0].Type != ports.EventProjectUpdated {
			t.Fatalf("member %s: unexpected events %+v", name, got)
		}
	}
}

func TestNotifier_OfflineMembersAreSkipped(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	alice := &fakeConn{}
	hub.Register("u1", alice)

	members := &stubMemberSource{members: map[string][]string{"p1": {"u1", "u2"}}}
	notifier := NewNotifier(hub, members, zerolog.Nop())

	notifier.Broadcast(context.Background(), "p1", ports.Event{Type: ports.EventTaskCreated})

	if len(alice.received()) != 1 {
		t.Fatalf("connected member must receive the event")
	}
}

func TestNotifier_MemberLookupFailureIsSwallowed(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := &fakeConn{}
	hub.Register("u1", conn)

	members := &stubMemberSource{err: errors.New("db down")}
	notifier := NewNotifier(hub, members, zerolog.Nop())

	// Must not panic and must not deliver anything.
	notifier.Broadcast(context.Background(), "p1", ports.Event{Type: ports.EventTaskCreated})

	if len(conn.received()) != 0 {
		t.Fatalf("no event must be delivered when the member lookup fails")
	}
}
