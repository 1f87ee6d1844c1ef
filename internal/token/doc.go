// Package token defines the token kinds of the HLSL pre-lexer.
// Invariants:
//   - Token.Text is a slice of the original source.
//   - Token.Span matches Text exactly.
//   - Comments and preprocessor lines are trivia and never appear in the
//     token stream.
//   - Type names (float4, Texture2D, ...) are identifiers; only words the
//     front end has to recognise before parsing are keywords.
package token
