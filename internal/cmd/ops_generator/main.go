// ops_generator generates the methods of the statistical operations of the root package.
package main

import "log"

func main() {
	GenerateStatisticalOps()
}

func must(err error) {
	if err != nil {
		log.Fatalf("Failed: %+v", err)
	}
}

func must1[T any](value T, err error) T {
	must(err)
	return value
}
