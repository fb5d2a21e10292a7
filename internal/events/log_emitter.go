package events

import (
	"encoding/json"
	"log"
)

func logEvent(name string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal event: %v", err)
		return
	}

	switch event.Type {
	case EventError:
		log.Printf("[error] %s %s", name, data)
	case EventWarn:
		log.Printf("[warn] %s %s", name, data)
	default:
		log.Printf("[info] %s %s", name, data)
	}
}
