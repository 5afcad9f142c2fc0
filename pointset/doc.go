// Package pointset loads dense, row-major float32 pointsets from the
// on-disk formats this system's reference datasets arrive in: raw
// whitespace-separated text, little-endian dimension-prefixed records
// ("fvecs"), and big-endian IDX image archives (MNIST and similar).
package pointset
