package meson

import "os"

// Env looks up a single environment variable, reporting whether it is
// set. Resolution logic takes an Env instead of reading the process
// environment directly so tests can simulate arbitrary variable states.
type Env func(key string) (value string, ok bool)

// SystemEnv returns an Env backed by the real process environment.
func SystemEnv() Env { return os.LookupEnv }
