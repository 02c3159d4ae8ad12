// Package workunit composes a descriptor, its lazy resource set, the
// background chart loader, and the conversion registry into one live working
// unit. Units own their disposal: closing a unit cancels any in-flight load
// and decrements the process-wide live counter, but deliberately leaves
// per-kind resources cached, since collaborators may still hold values they
// fetched earlier.
package workunit
