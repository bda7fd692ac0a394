package core

import "testing"

func resetEvents(t *testing.T) {
	t.Helper()
	if !EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	t.Cleanup(func() {
		EventSystemShutdown()
	})
}

func TestEventFireWithoutListeners(t *testing.T) {
	resetEvents(t)
	if EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}) {
		t.Error("EventFire returned true with no listeners registered")
	}
}

func TestEventListenersInvokedInOrder(t *testing.T) {
	resetEvents(t)

	var order []int
	EventRegister(EVENT_CODE_KEY_PRESSED, func(context EventContext) {
		order = append(order, 1)
	})
	EventRegister(EVENT_CODE_KEY_PRESSED, func(context EventContext) {
		order = append(order, 2)
	})

	if !EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED, Data: &KeyEvent{KeyCode: KEY_A}}) {
		t.Fatal("EventFire returned false with listeners registered")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("listener order = %v, want [1 2]", order)
	}
}

func TestEventPayloadDelivered(t *testing.T) {
	resetEvents(t)

	var got *SystemEvent
	EventRegister(EVENT_CODE_RESIZED, func(context EventContext) {
		got = context.Data.(*SystemEvent)
	})
	EventFire(EventContext{
		Type: EVENT_CODE_RESIZED,
		Data: &SystemEvent{WindowWidth: 640, WindowHeight: 480},
	})
	if got == nil || got.WindowWidth != 640 || got.WindowHeight != 480 {
		t.Errorf("payload = %+v, want 640x480", got)
	}
}

func TestEventShutdownClearsListeners(t *testing.T) {
	resetEvents(t)

	fired := false
	EventRegister(EVENT_CODE_MOUSE_WHEEL, func(context EventContext) { fired = true })
	EventSystemShutdown()
	EventSystemInitialize()

	EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL})
	if fired {
		t.Error("listener survived a shutdown")
	}
}
