package main

import (
	"os"

	"github.com/flathive/flathive/flatservice"
)

func main() {
	if err := flatservice.Run(); err != nil {
		os.Exit(1)
	}
}
