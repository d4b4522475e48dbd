package events

import "github.com/atomicstack/navmenu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Mode(mode string) {
	logging.Trace("app.mode", map[string]interface{}{"mode": mode})
}

func (AppTracer) Shutdown(reason string) {
	logging.Trace("app.shutdown", map[string]interface{}{"reason": reason})
}
