// Command guardcheck is a linter that reports scope guards that can
// never fire or that fire immediately instead of at scope exit.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/Cresspresso/defer/analyzer"
)

func main() {
	singlechecker.Main(analyzer.New())
}
