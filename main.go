/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/emberengine/ember/engine"
	"github.com/emberengine/ember/engine/core"
	"github.com/emberengine/ember/testbed"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		panic(err)
	}

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		panic(err)
	}

	e, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := e.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// Translate signals into a quit event. The frame loop sees it on its
	// next iteration and returns, so teardown stays on the context thread.
	go func() {
		<-sigCh
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}()

	// run engine
	if err := e.Run(); err != nil {
		panic(err)
	}

	if err := e.Shutdown(); err != nil {
		panic(err)
	}
}
