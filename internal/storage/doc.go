// Package storage writes built games into an import directory laid out for
// a graph database bulk import.
//
// Node and relationship files are comma separated with a header row. The
// game, player and played_in files are shared by the whole batch and
// appended to; every other file belongs to one game, or one player of a
// game, and is written in full under a temporary name before being moved
// into place.
package storage
