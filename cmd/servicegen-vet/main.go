// Command servicegen-vet checks //servicegen:service markers without
// generating manifests.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/servicegen"
)

func main() {
	singlechecker.Main(servicegen.Analyzer)
}
