// Package renderer turns report structs into markdown strings, ready for
// terminal rendering.
package renderer
