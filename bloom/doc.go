package bloom

/*

# Counting Bloom filters on packed 4-bit counters (4-way)

This package provides a counting Bloom filter whose counters are 4-bit fields
packed sixteen to a uint64 by an xbits.Vector.

A plain Bloom filter sets one bit per hash. A counting filter increments a
small counter instead, which makes removal possible: removing an element
decrements the same counters it incremented.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the element is not present.
- If the filter says "maybe present", then the element may or may not be present
  (false positives are possible).

They are not cryptographic commitments and do not provide proofs of exclusion.

## 4 parallel filters

There are exactly 4 parallel filters, each indexing 32-byte elements
(`ValueBytes`). All 4 share the same counter count and live side by side in
one vector:

	+----------------------+  counters [0, m)
	| filter0 counters     |
	+----------------------+  counters [m, 2m)
	| filter1 counters     |
	+----------------------+  counters [2m, 3m)
	| filter2 counters     |
	+----------------------+  counters [3m, 4m)
	| filter3 counters     |
	+----------------------+

## Indexing

Counter indexes come from deterministic double hashing:

	h1 || h2 = SHA-256(0xB0 || filterIdx || elem)[0:16]
	j_i      = (h1 + i*h2) mod m,  i in [0, k)

## Saturation

A counter that reaches 15 sticks there. Insert never wraps it and Remove never
decrements it, because its true count is no longer known. Saturated counters
make the affected elements permanently "maybe present", never falsely absent.

*/
