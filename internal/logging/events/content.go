package events

import "github.com/atomicstack/navmenu/internal/logging"

type ContentTracer struct{}

var Content = ContentTracer{}

func (ContentTracer) Scan(dir string, entries int) {
	logging.Trace("content.scan", map[string]interface{}{"dir": dir, "entries": entries})
}

func (ContentTracer) Watch(dir string) {
	logging.Trace("content.watch", map[string]interface{}{"dir": dir})
}

func (ContentTracer) Change(dir, op string) {
	logging.Trace("content.change", map[string]interface{}{"dir": dir, "op": op})
}

func (ContentTracer) Error(dir string, err error) {
	if err == nil {
		return
	}
	logging.Trace("content.error", map[string]interface{}{"dir": dir, "error": err.Error()})
}
