package phogen

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"golang.org/x/sync/errgroup"

	phoerrors "github.com/phogen/phogen/errors"
	"github.com/phogen/phogen/fohash"
	"github.com/phogen/phogen/hashval"
	"github.com/phogen/phogen/internal/bits"
	"github.com/phogen/phogen/sohash"
)

// Stats reports what happened to the input during a build.
type Stats struct {
	// Raw is the number of items handed to the builder.
	Raw int
	// Kept is m, the number of items that survived ingestion and were
	// assigned a final slot.
	Kept int
	// DroppedDuplicates counts items dropped for repeating an earlier
	// payload in their bucket.
	DroppedDuplicates int
	// DroppedCollisions counts items dropped because a different
	// payload in their bucket already carried the same first-order key.
	DroppedCollisions int
	// SeedAttempts is the total number of candidate seeds drawn across
	// all buckets during placement.
	SeedAttempts uint64
}

// PHash is a finished minimal perfect hash table: a bijection from the
// surviving key set onto [0, m). A build runs once over a fixed input;
// there is no insertion or deletion afterwards.
//
// The runtime lookup contract the table commits to, and that generated
// code reproduces, is:
//
//	key    = FOHash(query bytes)
//	bucket = key mod n        (64-bit keys truncate to low 32 bits first)
//	slot   = SOHash[seed(bucket)](key) mod m
//
// followed by comparing the stored payload at slot against the query.
type PHash struct {
	fo      fohash.Func
	so      sohash.Func
	buckets []bucket
	order   []*Item
	stats   Stats
}

// Build constructs a minimal perfect hash table over values.
//
// Duplicate payloads and unresolved first-order collisions are dropped
// silently, shrinking the table instead of failing the build; the drop
// counts are observable through Stats. Empty input yields a valid,
// trivially empty table.
func Build(values []Value, opts ...BuildOption) (*PHash, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bucketRatio <= 0 || cfg.bucketRatio > 1 {
		return nil, fmt.Errorf("%w: got %v", phoerrors.ErrInvalidBucketRatio, cfg.bucketRatio)
	}
	if cfg.maxAttempts < 1 {
		return nil, fmt.Errorf("%w: got %d", phoerrors.ErrInvalidMaxAttempts, cfg.maxAttempts)
	}
	fo, err := fohash.New(cfg.foName)
	if err != nil {
		return nil, err
	}
	so, err := sohash.New(cfg.soName)
	if err != nil {
		return nil, err
	}
	if fo.Bits() == 64 && so.KeyBits() < 64 {
		promoted := sohash.Promote64(so)
		cfg.logf("second-order hash %s has a 32-bit key domain; promoting to %s to match 64-bit %s",
			so.Name(), promoted.Name(), fo.Name())
		so = promoted
	}
	return build(fo, so, values, cfg)
}

// build runs ingestion and placement with resolved hash functions.
func build(fo fohash.Func, so sohash.Func, values []Value, cfg *config) (*PHash, error) {
	p := &PHash{fo: fo, so: so}
	p.ingest(values, cfg)
	if err := p.place(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// ingest buckets the input: one first-order hash per item, then a
// sequential insertion pass that drops duplicates and unresolved
// first-order collisions.
func (p *PHash) ingest(values []Value, cfg *config) {
	t := len(values)
	p.stats.Raw = t

	n := int(float64(t) * cfg.bucketRatio)
	if t > 0 && n == 0 {
		n = 1
	}
	p.buckets = make([]bucket, n)
	for i := range p.buckets {
		p.buckets[i].so = p.so.Clone()
	}
	if t == 0 {
		return
	}

	keys := p.hashAll(values, cfg)

	for i, v := range values {
		b := &p.buckets[keys[i].Mod(uint32(n))]
		switch b.scan(keys[i], v) {
		case insertOK:
			b.items = append(b.items, &Item{val: v, key: keys[i], pos: -1})
			p.stats.Kept++
		case dropDuplicate:
			p.stats.DroppedDuplicates++
			cfg.logf("dropping duplicate payload %s", v)
		case dropCollision:
			p.stats.DroppedCollisions++
			cfg.logf("dropping %s: first-order key %s already taken in its bucket", v, keys[i])
		}
	}
}

// hashAll computes every item's first-order key. Hashing is pure and
// has no cross-item dependency, so with workers configured the keys
// are computed in parallel chunks; insertion order is unaffected.
func (p *PHash) hashAll(values []Value, cfg *config) []hashval.Key {
	keys := make([]hashval.Key, len(values))
	if cfg.workers <= 1 {
		for i, v := range values {
			keys[i] = p.fo.Hash(v.Bytes())
		}
		return keys
	}

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	chunk := (len(values) + cfg.workers - 1) / cfg.workers
	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))
		g.Go(func() error {
			for i := start; i < end; i++ {
				keys[i] = p.fo.Hash(values[i].Bytes())
			}
			return nil
		})
	}
	// Workers cannot fail; Wait only synchronizes.
	_ = g.Wait()
	return keys
}

// place assigns every surviving item a unique final slot: buckets are
// sorted largest-first and, per bucket, random seeds are drawn until
// every item lands in a globally unoccupied slot.
func (p *PHash) place(cfg *config) error {
	m := p.stats.Kept
	p.order = make([]*Item, m)
	if m == 0 {
		return nil
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	// Largest buckets first: they are the hardest to place, so they get
	// the emptiest table. Stable sort keeps bucket-index order on ties.
	order := make([]int, len(p.buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(p.buckets[order[a]].items) > len(p.buckets[order[b]].items)
	})

	nonEmpty := 0
	for i := range p.buckets {
		if len(p.buckets[i].items) > 0 {
			nonEmpty++
		}
	}

	occ := bits.NewSet(m)
	placed := 0
	for _, bi := range order {
		b := &p.buckets[bi]
		if len(b.items) == 0 {
			continue
		}
		attempts, err := placeBucket(b, occ, m, rng, cfg.maxAttempts)
		p.stats.SeedAttempts += attempts
		if err != nil {
			return fmt.Errorf("bucket %d (%d items, %d of %d buckets placed): %w",
				bi, len(b.items), placed, nonEmpty, err)
		}
		placed++
		cfg.logf("placed bucket %d/%d (%d items, %d seed attempts)", placed, nonEmpty, len(b.items), attempts)
		if cfg.progress != nil {
			cfg.progress(placed, nonEmpty)
		}
	}

	for i := range p.buckets {
		for _, it := range p.buckets[i].items {
			p.order[it.pos] = it
		}
	}
	return nil
}

// placeBucket searches for a seed displacing every item in the bucket
// into unoccupied slots. Committing a seed only marks new slots and
// never revisits previously placed buckets, so placement is strictly
// append-only with respect to the occupancy set.
func placeBucket(b *bucket, occ *bits.Set, m int, rng *rand.Rand, maxAttempts int) (uint64, error) {
	slots := make([]uint32, len(b.items))
	for attempt := uint64(1); attempt <= uint64(maxAttempts); attempt++ {
		if b.so.KeyBits() == 64 {
			b.so.SetSeed(hashval.Seed64(rng.Uint64()))
		} else {
			b.so.SetSeed(hashval.Seed32(rng.Uint32()))
		}
		if !trySeed(b, occ, uint32(m), slots) {
			continue
		}
		for i, s := range slots {
			occ.Mark(s)
			b.items[i].pos = int(s)
		}
		return attempt, nil
	}
	return uint64(maxAttempts), phoerrors.ErrPlacementExhausted
}

// trySeed computes every item's candidate slot under the bucket's
// current seed, rejecting on an occupied slot or an intra-bucket
// duplicate. slots holds the accepted candidates on success.
func trySeed(b *bucket, occ *bits.Set, m uint32, slots []uint32) bool {
	for i, it := range b.items {
		s := b.so.Hash(it.key).Mod(m)
		if occ.Test(s) {
			return false
		}
		for _, prev := range slots[:i] {
			if prev == s {
				return false
			}
		}
		slots[i] = s
	}
	return true
}

// Len returns m, the size of the table's codomain [0, m).
func (p *PHash) Len() int {
	return p.stats.Kept
}

// BucketCount returns n, the fixed number of buckets.
func (p *PHash) BucketCount() int {
	return len(p.buckets)
}

// Items returns the surviving items densely indexed by final position:
// Items()[i].Pos() == i for every i in [0, m). The slice is empty for
// an empty table.
func (p *PHash) Items() []*Item {
	return p.order
}

// Seeds returns the per-bucket second-order seeds, indexed by bucket.
// Buckets that received no items carry the zero seed; generated lookup
// code still indexes them.
func (p *PHash) Seeds() []hashval.Seed {
	seeds := make([]hashval.Seed, len(p.buckets))
	for i := range p.buckets {
		seeds[i] = p.buckets[i].so.Seed()
	}
	return seeds
}

// FirstOrder returns the first-order hash the table was built with.
func (p *PHash) FirstOrder() fohash.Func {
	return p.fo
}

// SecondOrder returns the second-order hash template after any width
// promotion. Per-bucket seeds are exposed through Seeds.
func (p *PHash) SecondOrder() sohash.Func {
	return p.so
}

// Stats returns the build's ingestion and placement counters.
func (p *PHash) Stats() Stats {
	return p.stats
}
