package main

import "github.com/mesonext/meson/cmd/mesonbuild/internal"

func main() {
	internal.Execute()
}
