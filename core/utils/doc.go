// Package utils provides helpers shared by the upstream decoders: lenient JSON id decoding
// and parsing of the timestamp formats the upstream APIs emit.
package utils
