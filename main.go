package main

import (
	"github.com/mj1618/desktop-vision/cmd"

	// Platform backends register themselves in init.
	_ "github.com/mj1618/desktop-vision/internal/platform/darwin"
	_ "github.com/mj1618/desktop-vision/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
