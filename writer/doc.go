// File: doc.go
// Role: package writer streams core.MatchRow values to a columnar
// output file in bounded batches (spec §4.5).
//
// Determinism:
//   - Writer never reorders rows; it only chunks the stream the caller
//     hands it. The merged stage order from the matcher is preserved
//     byte-for-byte in the output file.
//
// Concurrency:
//   - A Writer is not safe for concurrent use. matcher.Run calls Write
//     once per stage, sequentially; there is no internal locking.
package writer
