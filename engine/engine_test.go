package engine

import (
	"testing"

	"github.com/emberengine/ember/engine/core"
)

func TestQuitEventStopsEngine(t *testing.T) {
	e := &Engine{isRunning: true}

	e.onEvent(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	if e.isRunning {
		t.Error("engine still running after quit event")
	}
}

func TestUnrelatedEventKeepsEngineRunning(t *testing.T) {
	e := &Engine{isRunning: true}

	e.onEvent(core.EventContext{Type: core.EVENT_CODE_MOUSE_WHEEL})
	if !e.isRunning {
		t.Error("engine stopped on an unrelated event")
	}
}
