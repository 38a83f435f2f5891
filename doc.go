// Package phogen builds a Minimal Perfect Hash Function (MPHF) over a
// fixed, known-in-advance key set and exposes the resulting table to a
// code generator that emits a constant-time, collision-free lookup
// routine.
//
// Given m distinct keys, the builder produces a bijection onto [0, m)
// that a two-stage hash computation reproduces at lookup time without
// storing any intermediate structure beyond one seed per bucket:
//
//	key    = FOHash(query bytes)
//	bucket = key mod n
//	slot   = SOHash[seeds[bucket]](key) mod m
//
// Construction buckets the keys by first-order hash, orders buckets
// largest-first, and searches randomized second-order seeds per bucket
// until every item displaces into a globally unoccupied slot (a Las
// Vegas search, capped by an attempt budget).
//
// # Basic Usage
//
// Building from a token file and generating C lookup code:
//
//	p, err := phogen.FromFile("keywords.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	err = gen.Generate(&buf, p, gen.Config{Name: "kw_lookup", Namespace: "kw", Language: "c"})
//
// Building from in-memory values:
//
//	values := []phogen.Value{phogen.StringValue("if"), phogen.StringValue("else")}
//	p, err := phogen.Build(values, phogen.WithFirstOrderHash("fnv1a"))
//
// # Package Structure
//
//   - Public API: phash.go (Build, PHash accessors), reader.go (FromFile)
//   - Configuration: options.go (BuildOption, With* functions)
//   - Data model: item.go (Value, Item), bucket.go
//   - Hash families: fohash/ (first-order), sohash/ (second-order, reseedable)
//   - Value types: hashval/ (Key, Seed)
//   - Codegen: gen/ (lookup-routine emission from template config)
//   - Platform: fadvise_*.go (sequential-read hint for input scanning)
package phogen
