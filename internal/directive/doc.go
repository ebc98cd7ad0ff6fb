// Package directive parses servicegen comment directives.
//
// # Overview
//
// Directives are line comments attached to type declarations:
//
//	//servicegen:<directive> [args] [- comment]
//
// The only directive understood by default is the service marker:
//
//	//servicegen:service io.Reader, example.com/app/plugin.Plugin
//	type FileSource struct{ ... }
//
// # Arguments
//
// Arguments are type references separated by commas or spaces. A reference
// is an import path followed by a type name:
//
//	io.Reader
//	github.com/example/pkg.Service
//	github.com/example/pkg.Generic[int]   // instantiation is ignored
//	Local                                  // type in the declaring package
//
// Anything after " - " or " //" is a human-readable comment:
//
//	//servicegen:service io.Reader - exposed to the plugin host
//
// See [ParseReference] for the validation rules.
package directive
