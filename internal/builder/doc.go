/*
Package builder turns a decoded replay into the records of the graph import.

Building happens in two steps. Node builders map each entity through its
schema table and then fill the injected fields (ids, indices, port number),
so a returned record is complete. Edge builders derive relationships from
node records that were already built, which keeps edge endpoints and node
ids consistent by construction.

Build runs both steps for one game and returns a Graph holding everything
that must be written for it. Nothing is written here; a Graph is either
complete or not returned at all.
*/
package builder
