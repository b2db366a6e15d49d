// Package workspace maps a working directory to the identifier of the
// registered workspace that encloses it.
package workspace
