package phogen

import (
	"github.com/phogen/phogen/hashval"
	"github.com/phogen/phogen/sohash"
)

// bucket groups the items whose first-order key reduces to the same
// value modulo the bucket count, together with the bucket's private
// second-order hash. The hash's seed stays at its zero default until
// the placement search commits one; from then on it is part of the
// persisted table.
type bucket struct {
	items []*Item
	so    sohash.Func
}

type scanResult uint8

const (
	insertOK scanResult = iota
	dropDuplicate
	dropCollision
)

// scan decides the fate of a new arrival against the items already in
// the bucket: an equal payload is a duplicate, an equal first-order key
// with a different payload is an unresolved collision. Either way the
// arrival is dropped and the table shrinks by one; the build never
// fails on imperfect input.
func (b *bucket) scan(key hashval.Key, v Value) scanResult {
	for _, it := range b.items {
		if it.val.Equal(v) {
			return dropDuplicate
		}
		if it.key == key {
			return dropCollision
		}
	}
	return insertOK
}
