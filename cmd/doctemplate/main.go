// Command doctemplate renders JSON or YAML documents through user template
// chains and inspects how those chains resolve.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(surveyChooser).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
