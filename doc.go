// Package meson locates a system Meson installation and drives its
// setup/build/install workflow as subprocesses from a Go build script.
//
// A typical build script does:
//
//	config, err := meson.Find()
//	if err != nil {
//		return err
//	}
//	config.SetOption("default_library", "static")
//	config.SetOutPath(outDir)
//	if err := config.Build(sourceDir); err != nil {
//		return err
//	}
//
// Find resolves the executable from the environment (a per-target
// MESON_<TARGET> override wins over MESON, which wins over the plain
// "meson" command) and queries its version once. Build then runs setup,
// build and install in order against the resolved executable, skipping
// setup when the build directory already holds a build.ninja.
package meson
