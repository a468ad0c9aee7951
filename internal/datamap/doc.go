// Package datamap maps source entities to flat records through ordered
// tables of named field extractors.
//
// A Table is declared once, at package init, as an ordered list of
// (field name, extractor) pairs. Applying it to an entity yields a Record
// holding one cty.Value per declared field, in declaration order, which is
// also the column order of the delimited file the record ends up in.
package datamap
