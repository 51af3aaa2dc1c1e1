// Package fspath provides Path, a structured filesystem path value.
// A Path is built from text once, validated on construction, and then answers
// existence and kind queries and composes with other path elements,
// so code receiving a Path never has to re-parse or re-validate raw strings.
package fspath
