package events

import "context"

var Emit = func(ctx context.Context, name string, evt Event) {}

// EnableLogEmitter routes events to the process log.
func EnableLogEmitter() {
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}
		logEvent(name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt Event)) {
	if f == nil {
		Emit = func(context.Context, string, Event) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.SessionKey == "" {
			if session := SessionFromContext(ctx); session != "" {
				evt.SessionKey = session
			}
		}
		f(ctx, name, evt)
	}
}
