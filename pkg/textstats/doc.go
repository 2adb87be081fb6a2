// Package textstats computes live document metrics: grapheme, word and line
// counts, caret position and the code point under a one-scalar selection.
//
// Everything here is a pure function of (text, selection). Offsets and
// columns are UTF-16 code units, matching package document.
package textstats
