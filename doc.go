// Package dervish provides machinery for declarative derivation graphs.
//
// The core code is in package 'core', and some command-line tools are in `cmd`.
//
// See https://github.com/Comcast/dervish/blob/master/README.md for more.
package dervish
