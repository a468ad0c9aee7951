// Package slippi decodes Slippi replay files (.slp) recorded from Super
// Smash Bros. Melee.
//
// A replay is a UBJSON document with two top-level keys: "raw", a byte
// array holding the big-endian event stream, and "metadata", an object
// describing where and when the game was played. The decoder keeps the
// events needed to describe a game and its per-frame player state: Game
// Start, Post-Frame Update and Game End. Every other event is skipped using
// the size table carried by the leading Event Payloads event, so replays
// written by newer Slippi versions still decode.
//
// Fields added to the format after its first release are optional. They
// are pointers here and stay nil when the replay predates them.
package slippi
