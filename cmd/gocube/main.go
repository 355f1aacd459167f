// GoCube Animator - animated 3x3 cube for the terminal.
package main

import (
	"github.com/SeamusWaldron/gocube_animator/internal/cli"
)

func main() {
	cli.Execute()
}
