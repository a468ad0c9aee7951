// internal/nodeid/doc.go

/*
Package nodeid builds and parses the synthetic identifiers of graph nodes.

An identifier is a kind prefix followed by the decimal indices that locate
the node, joined with '-':

	game-<game>
	player-<game>-<port>
	port-<game>-<port>-<frame>
	frame-<game>-<frame>

Decimal integers never contain '-', so distinct index tuples of the same
kind always produce distinct identifiers, and the kind prefix keeps kinds
with the same arity apart.
*/
package nodeid
