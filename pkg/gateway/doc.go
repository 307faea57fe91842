// Package gateway assembles the HTTP gateway: the middleware pipeline,
// the route table, and the server lifecycle (start, signal handling,
// graceful shutdown).
//
// The pipeline order is load-bearing. Recovery sits outermost so it sees
// every panic; RealIP runs before the limiters so they key on resolved
// client identity; CORS runs before the limiters so preflights consume no
// quota; the global limiter gates everything that reaches the router, and
// the AI limiter additionally gates the three AI route prefixes.
package gateway
