// Command sidecar-tests validates a Substrate API Sidecar by comparing its
// responses with the node it fronts, and exits non-zero on any difference.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
