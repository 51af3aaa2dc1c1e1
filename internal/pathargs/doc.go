// Package pathargs rewrites text arguments into fspath.Path values before a
// function runs, driven by an explicit parameter table.
//
// A Signature lists each parameter's name, declared type (a TypeSet, possibly a
// union such as TypePath|TypeText), whether it is positional or keyword-only, and
// its default. Wrap inspects the table once, remembers which parameters are
// path-bearing, and returns a callable that on every invocation converts string
// values for those parameters, leaves paths, other union members and nil alone,
// and injects pre-converted defaults for omitted parameters.
//
// Bind adapts an ordinary typed Go function to the uniform Func shape so that it
// can be wrapped, and Chain composes further layers around it.
package pathargs
