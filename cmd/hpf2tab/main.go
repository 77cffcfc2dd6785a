// Command hpf2tab decodes HPF data-acquisition recordings into delimited
// text or Parquet tables.
package main

import (
	"fmt"
	"os"

	"github.com/hpftools/hpf2tab/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
