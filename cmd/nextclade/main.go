// Command nextclade aligns query sequences against a reference genome,
// translates and calls mutations gene by gene, assigns each query to its
// nearest node in a reference tree, scores it against a fixed set of
// quality-control rules, and re-emits the tree with the new sequences
// attached.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
