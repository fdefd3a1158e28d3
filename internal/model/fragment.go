package model

// Fragment is the definition of one hardware-interface unit. Fragments are
// defined statically in the library, selected at most once per composition
// pass, and never mutated afterward.
type Fragment struct {
	// Role is the hardware subsystem this fragment fills.
	Role Role

	// Description is optional operator-facing text.
	Description string

	// Source is the content reference contributed to the composed
	// description (e.g. a urdf/xacro path handed to the assembler).
	Source string

	// Driver is the role's default fake-driver identifier, used when a
	// document's fragment reference does not name one explicitly.
	Driver string

	// Path records the library file the definition came from, for error
	// messages.
	Path string
}
