// Package pipeline runs the ordered stage chains applied to every outgoing
// request before it reaches the transport and to every successful response
// before it is handed back to the caller.
//
// # Contract
//
// Stages are independent transform functions over the descriptor. The driver
// executes them in registration order; the first stage that fails
// short-circuits the remainder and its error propagates to the caller —
// never silently swallowed. Stages share no state beyond the descriptor
// itself.
//
// The canonical request order is: connectivity, refresh gate, auth
// precondition, URL templating, parameter routing, preference headers,
// credential header. Stages that only touch in-memory state never block;
// only the preference and credential lookups may reach a store.
//
// # What this package must NOT do
//
//   - Trigger refreshes or queue requests (the coordinator reacts to the
//     gate's flow-control error; this package only raises it).
//   - Import goAuthClient.
package pipeline
