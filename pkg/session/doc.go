/*
Package session implements a registry of concurrent playthroughs.

Every session owns an independent engine built from one shared, immutable story
graph. Compound operations on a session (look up, transition, snapshot) are
serialised by a per-session lock whose entries are reference counted, so idle
sessions do not leave locks behind. Sessions live in memory only.
*/
package session
