// Package compiler defines the boundary to the downstream grammar
// compiler.
//
// Canopy validates and types grammar descriptions; it does not build
// parse tables, detect conflicts, or generate parser code. That work
// belongs to a Compiler implementation, which the pipeline treats as a
// black box: it receives a fully-validated grammar and returns generated
// source plus any conflicts it found.
//
// Two implementations ship here. Func adapts an in-process function,
// which is how tests stub the boundary. External runs a configured
// compiler command, feeding it canonical grammar JSON on stdin and
// reading generated source from stdout.
package compiler
