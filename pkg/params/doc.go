// Package params reads and writes Imperial parameter files.
//
// An Imperial parameter file is a line-oriented list of entries. Each entry starts with a
// header line holding the parameter name between square brackets, followed by one or more
// value lines:
//
//	[Number of level 1 administrative units to include]
//	1
//
//	[Codes and country/province names for admin units]
//	610100	United_States	Alabama
//	610200	United_States	Alaska
//
// A single value line holding one token is a scalar, a single line holding several tokens
// separated by spaces or tabs is a vector, and several value lines form a matrix. A value
// starting with `#` means the simulator should use its built-in default, so the entry is
// dropped. Any line that is neither a header nor part of a value block is a comment.
//
// Parse turns the text into a Document, an ordered mapping from parameter names to values,
// and Serialize turns a Document back into text. Documents produced by Parse always
// serialize cleanly and re-parse to the same document.
package params
