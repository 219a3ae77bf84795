// Public domain.

package main

import "github.com/soniakeys/cometeph/internal/ceprog"

func main() {
	ceprog.Main()
}
