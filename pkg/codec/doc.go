/*
Package codec converts between a Configuration and its JSON representation,
the value carried by the "config" query parameter.

Decode is total: every failure collapses to the empty configuration, and
validation is all-or-nothing over the whole document. DecodeStrict exposes the
reason for diagnostics.

	cfg := codec.Decode(`{"poles":[[0.9,45]],"zeros":[]}`)
	raw := codec.Encode(cfg) // {"poles":[[0.9,45]],"zeros":[]}
*/
package codec
