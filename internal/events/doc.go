// Package events carries change events from the services that produce them to
// whatever delivers them to clients.
//
// Services emit an Event after their transaction commits; handlers such as the
// realtime hub are registered on an EventEmitter and receive every event.
package events
