// Package highlight picks a chroma lexer for a source file and renders
// highlighted HTML fragments and theme CSS.
//
// Lexer selection tries, in order: an explicit language name, the file name,
// the content, and finally the plain-text lexer when fallback is enabled.
package highlight
