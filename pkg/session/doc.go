/*
Package session owns the server-side parameter state of explorer sessions.

A Manager serializes every change to one session (locally with ref-counted
mutexes, across replicas with an optional ports.DistributedLocker) and
persists it through a ports.StateStore. Selecting a signal resets its
parameters to their defaults; setting a parameter clamps it into range.

A Coalescer absorbs bursts of edits, such as a dragged slider, and hands the
renderer only the latest state of each session, at most once per tick.
*/
package session
