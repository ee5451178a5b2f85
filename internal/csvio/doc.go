// Package csvio converts between raw file bytes and a grid of string cells.
//
// Decoding detects the text encoding (UTF-8 with or without a byte order
// mark, UTF-16 with a byte order mark, or Latin-1 for anything that is not
// valid UTF-8) and the line ending, then parses the text with the standard
// CSV quoting rules. The detected properties are returned as a Format so a
// later Encode writes the file back the way it was read.
package csvio
