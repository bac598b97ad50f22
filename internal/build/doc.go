// Package build runs the style-guide pipeline: scan the source tree, parse
// documentation comments into a block hierarchy, fold it into pages, render
// and write them, then copy assets and record what was produced.
//
// Every execution path (build command, watch loop, tests) goes through
// Service. Assemble runs only the read side for inspection commands.
package build
