// Package main provides the Lattice ML Framework CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lattice-ml/lattice/serialization"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Lattice ML Framework %s\n", version)
			return
		case "inspect":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: lattice inspect <file.latt>")
				os.Exit(1)
			}
			if err := inspect(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "lattice: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Lattice ML Framework - Numerical Algorithms for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version            Show version")
	fmt.Println("  inspect <file>     Describe a .latt file")
}

// inspect prints the header of a .latt file.
func inspect(path string) error {
	r, err := serialization.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	fmt.Printf("object type:  %s\n", h.ObjectType)
	fmt.Printf("created at:   %s\n", h.CreatedAt)
	fmt.Printf("written by:   lattice %s\n", h.LatticeVersion)
	fmt.Printf("entries:      %d\n", len(h.Entries))
	for _, e := range h.Entries {
		fmt.Printf("  [%d] %-22s %-8s shape=%v  %d bytes\n", e.ID, e.Name, e.DType, e.Shape, e.Size)
	}
	return nil
}
