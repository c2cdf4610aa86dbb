// Package document models immutable text with a cursor.
//
// A Document never changes after construction; editing operations live in
// the buffer package and produce new Documents. All positions are rune
// indexes, not byte offsets, so multi-byte UTF-8 input moves the cursor
// one position per character. Display-width calculations account for
// wide characters and grapheme clusters.
package document
