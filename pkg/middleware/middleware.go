// Package middleware provides composable HTTP middleware: request logging,
// request IDs, panic recovery, CORS, and rate limiting.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

// Stack is an ordered middleware chain. The first entry added is the
// outermost wrapper.
type Stack struct {
	chain []Middleware
}

// Use appends mw to the stack.
func (s *Stack) Use(mw Middleware) {
	s.chain = append(s.chain, mw)
}

// Len returns the number of middleware in the stack.
func (s *Stack) Len() int {
	return len(s.chain)
}

// Apply wraps handler with every middleware in the stack.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.chain) - 1; i >= 0; i-- {
		handler = s.chain[i](handler)
	}
	return handler
}
