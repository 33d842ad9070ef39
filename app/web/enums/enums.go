// Package enums provides type-safe enumeration types for the web interface.
//
// This package uses code generation via go-pkgz/enum to create enum types
// with string conversion, parsing and text marshaling.
//
// The enum types are defined as unexported integer types (e.g., theme int) in this file,
// and the go:generate directives invoke the enum generator to create corresponding exported
// types with all necessary methods in separate files (*_enum.go).
//
// Usage:
//
//	kind := enums.FlashKindSuccess
//	fmt.Println(kind.String()) // "success"
//
//	parsed, err := enums.ParseTheme("dark")
//	if err != nil {
//	    // handle invalid input
//	}
//
// To regenerate the enum types after modifications:
//
//	go generate ./app/web/enums
package enums

//go:generate go run github.com/go-pkgz/enum@latest -type theme -lower
//go:generate go run github.com/go-pkgz/enum@latest -type flashKind -lower

// theme represents UI themes.
// This is an unexported type used only as input for the code generator.
// Use the exported Theme type and its constants in actual code.
type theme int

const (
	themeLight theme = iota
	themeDark
)

// flashKind represents the kind of one-shot message shown on the next page.
// This is an unexported type used only as input for the code generator.
// Use the exported FlashKind type and its constants in actual code.
type flashKind int

const (
	flashKindSuccess flashKind = iota
	flashKindError
	flashKindInfo
)
