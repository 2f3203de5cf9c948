/*
Package polezero stores and edits pole-zero configurations: lists of poles and
zeros, each a (magnitude, phase) pair, that a frequency-response page reads
from its "config" query parameter.

The library is organised around three steps. A configuration is hydrated from
an external source (the page URL) by the codec, which substitutes an empty
configuration for anything invalid. It is then edited as a draft while an
editor is open. Finally it is published: encoded back into the source, which
yields the URL the page navigates to.

# Usage

	src, _ := query.Parse(`/freq-response?config={"poles":[[0.9,45]],"zeros":[]}`, publish.New())

	ed := polezero.New()
	ctx := context.Background()

	id, cfg, err := ed.Open(ctx, src) // cfg holds one pole
	if err != nil {
		log.Fatal(err)
	}

	_, _ = ed.AddPoint(ctx, id, domain.Zero)
	_, _ = ed.SetCoordinate(ctx, id, domain.Zero, 0, domain.Magnitude, "0.5")

	target, err := ed.Publish(ctx, id, src)
	// target: /freq-response?config=%7B%22poles%22...

# Architecture

  - pkg/domain: ComplexPoint, Configuration, Kind, Axis and sentinel errors.
  - pkg/codec: Decode (total), DecodeStrict, Encode, Validate.
  - pkg/mutate: pure AddPoint, SetCoordinate, RemovePoint.
  - pkg/publish: navigation targets and URL reading.
  - pkg/ports: ConfigSource, DraftStore and DistributedLocker.
  - pkg/adapters: memory, file, redis, query (URL), http and mcp.
*/
package polezero
