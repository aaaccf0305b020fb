// Package taskhubapi contains the wire types for the TaskHub HTTP API and a
// small client for it. The server handlers and the end-to-end test suite both
// build against these types so the two cannot drift apart.
package taskhubapi
