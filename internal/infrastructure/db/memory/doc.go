// Package memory holds process-local implementations of the repository
// ports. Every store owns its collections behind a mutex and hands out copies,
// so callers can never mutate stored records directly.
package memory
