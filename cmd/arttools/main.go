// arttools - small tools for artists
//
// arttools shows the colour distribution of reference images and builds a
// three-dimensional map of artistic styles.
package main

import (
	"github.com/YeenieBeans/Tools-For-Artists/internal/cli"
)

func main() {
	cli.Execute()
}
