// SPDX-License-Identifier: MIT
// File: main.go
// Role: process entry point. All real work lives in root.go/match.go so
// that exit-code selection (spec §6) stays in one place.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
