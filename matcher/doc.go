// File: doc.go
// Role: package matcher orchestrates the three-stage algorithm (spec
// §4.4) over the entity slices the loader produces and the trees the
// caller builds over them.
//
// Determinism:
//   - Every stage partitions its driving slice into contiguous,
//     statically sized chunks, one per worker; each worker emits into its
//     own buffer, and buffers are concatenated in chunk order once the
//     stage's errgroup completes. No row's relative position depends on
//     goroutine scheduling.
//
// Concurrency:
//   - parcel_matched is a []atomic.Bool, written with relaxed
//     (monotonic true) stores from Stage 1/2 workers and read after the
//     errgroup barrier by Stage 3. There is no other shared mutable
//     state; both R-trees and both entity slices are read-only for the
//     duration of Run.
package matcher
