// Package lsh implements one stable-distribution locality-sensitive hash
// function: h(x) = floor((a·x + b) / r), with a drawn i.i.d. from a normal
// distribution and b uniform over [0, r].
//
// A built Hash owns three tables: the bucket table (hash key -> point
// indices), the bit table (hash key -> one uniformly random bit, fixed the
// first time the key is observed), and, for the terminal hash in a K-hash
// family only, the cube table (K-byte code -> point indices).
package lsh
