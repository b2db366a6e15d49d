// Package supervisor makes sure the Bilrost background service is reachable
// before a command talks to it.
//
// A Supervisor probes the service port, launches the configured service
// command detached when nothing answers, and polls until the port accepts
// connections or the start timeout elapses. A file lock in the state
// directory keeps concurrent invocations from launching duplicate services:
// the invocation that loses the lock only waits.
package supervisor
