package events

import "github.com/atomicstack/navmenu/internal/logging"

type LaunchTracer struct{}

var Launch = LaunchTracer{}

func (LaunchTracer) Start(launcher, path string, args []string) {
	logging.Trace("launch.start", map[string]interface{}{"launcher": launcher, "path": path, "args": args})
}

func (LaunchTracer) Finish(launcher, path string, err error) {
	payload := map[string]interface{}{"launcher": launcher, "path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("launch.finish", payload)
}
