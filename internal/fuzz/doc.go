// Package fuzztests houses Go fuzz harnesses for the HLSL front end. The
// lexer harness feeds raw bytes through token scanning; the pipeline harness
// parses and binds them and checks that every run terminates and that the
// reported diagnostics point into the input.
package fuzztests
