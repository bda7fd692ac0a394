package core

import "sync"

// System internal event codes. Applications should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02
	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03
	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04
	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05
	// Mouse moved. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06
	// Mouse wheel scrolled. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL SystemEventCode = 0x07
	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x08
	// Text input received from the OS. Data is a *TextEvent.
	EVENT_CODE_TEXT_INPUT SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type TextEvent struct {
	Text string
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	registered map[SystemEventCode][]FnOnEvent
}

var onceEvent sync.Once
var eventInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
		}
	})
	eventInitialized = true
	return true
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[SystemEventCode][]FnOnEvent)
	}
	eventInitialized = false
	return nil
}

// EventRegister subscribes a callback for the given event code. Every
// registered callback for a code is invoked, in registration order, each
// time that code is fired.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if !eventInitialized {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire dispatches an event to every listener of its code. Returns false
// when nothing is registered for the code.
func EventFire(context EventContext) bool {
	if !eventInitialized {
		return false
	}
	listeners := eventState.registered[context.Type]
	if len(listeners) == 0 {
		return false
	}
	for _, cb := range listeners {
		cb(context)
	}
	return true
}
