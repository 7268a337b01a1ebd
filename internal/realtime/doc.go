// Package realtime is the WebSocket gateway. Clients authenticate at the
// handshake, then receive every committed change as a JSON frame
// {"event": name, "data": payload} and may post comments over the same
// connection.
//
// The Hub is an events.EventHandler: services emit events after commit and
// the hub fans them out to all connected sessions without blocking. A
// session that cannot keep up is disconnected.
package realtime
