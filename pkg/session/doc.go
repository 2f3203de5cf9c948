/*
Package session implements draft session management.

A draft is the configuration being edited while an editor is open. The Manager
serializes every read-modify-write on a draft with a per-session mutex and,
when configured, a distributed lock, so that concurrent requests for the same
editor cannot lose edits across replicas.
*/
package session
