// Package api exposes the generation pipeline over HTTP. Handlers
// decode and validate request bodies, call into the service layer, and
// translate the stable generation error codes into HTTP statuses. The
// router wires the handlers behind chi's standard middleware.
package api
