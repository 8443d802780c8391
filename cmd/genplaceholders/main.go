package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/gridcaster/internal/placeholders"
)

func main() {
	out := flag.String("out", "data", "Directory to write the sample map into")
	flag.Parse()

	fmt.Println("Gridcaster Sample Map Generator")
	fmt.Println("===============================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! The sample courtyard is ready to use.")
	fmt.Printf("Run: go run ./cmd/gridcaster -map %s\n", *out)
}
