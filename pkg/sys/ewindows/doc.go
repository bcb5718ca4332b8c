// Package ewindows provides Windows-specific utilities.
package ewindows
