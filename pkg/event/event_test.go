package event_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-questionnaire/pkg/event"
)

func TestEvent_TriggerDeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	ch := event.New[string]("question:change")
	var got []string
	ch.On(func(p string) { got = append(got, "first:"+p) })
	ch.On(func(p string) { got = append(got, "second:"+p) })

	ch.Trigger("a")

	want := []string{"first:a", "second:a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("delivery mismatch (-want +got):\n%s", diff)
	}
	if ch.Name() != "question:change" {
		t.Fatalf("unexpected name %q", ch.Name())
	}
}

func TestEvent_OffRemovesListener(t *testing.T) {
	t.Parallel()

	ch := event.New[int]("counter")
	calls := 0
	off := ch.On(func(int) { calls++ })

	ch.Trigger(1)
	off()
	off()
	ch.Trigger(2)

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if ch.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", ch.Len())
	}
}

func TestEvent_LateSubscriberMissesPastEvents(t *testing.T) {
	t.Parallel()

	ch := event.New[string]("late")
	ch.Trigger("missed")

	var got []string
	ch.On(func(p string) { got = append(got, p) })
	ch.Trigger("seen")

	if diff := cmp.Diff([]string{"seen"}, got); diff != "" {
		t.Fatalf("late subscriber mismatch (-want +got):\n%s", diff)
	}
}

func TestEvent_ListenerMayUnsubscribeDuringDelivery(t *testing.T) {
	t.Parallel()

	ch := event.New[string]("self-removing")
	var got []string
	var off func()
	off = ch.On(func(p string) {
		got = append(got, "once:"+p)
		off()
	})
	ch.On(func(p string) { got = append(got, "always:"+p) })

	ch.Trigger("a")
	ch.Trigger("b")

	want := []string{"once:a", "always:a", "always:b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("delivery mismatch (-want +got):\n%s", diff)
	}
}
