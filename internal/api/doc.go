// Package api provides the HTTP REST interface for accml.
//
// It exposes the machine to operator tools and scripts: device property
// reads and sets, lattice-space command rewriting, the simulated
// machine's derived results, and the yellow-pages family registry.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// # Error envelope
//
// Failures are returned as a JSON object with status, code, and message.
// Failed identifier lookups additionally carry the related entries the
// lookup tables do know, so an operator can see how close a request was.
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
