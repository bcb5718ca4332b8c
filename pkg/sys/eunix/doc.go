// Package eunix provides Unix-specific utilities.
package eunix
