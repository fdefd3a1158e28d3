// Package model provides the Go struct representation of robot description
// documents and hardware fragment definitions. Its core purpose is to create
// a strongly-typed, in-memory model of the user's declarations by parsing the
// raw HCL files.
//
// The model is built around a few key structures:
//
//   - Document: one robot description. It owns a mandatory base-content
//     reference, the declared arguments, and the ordered conditional fragment
//     references gated by the composition flag.
//
//   - Fragment: the reusable definition of one hardware-interface role (arm,
//     head, gripper, base). Fragments are defined once in a library and
//     referenced by documents; they are never mutated after loading.
//
//   - Role: the closed set of hardware roles a fragment may fill, together
//     with the canonical order in which roles are composed.
//
// Why a separate model package?
//
// This package acts as an intermediate layer between raw HCL and the
// composer. It organizes the decoded blocks into a predictable structure and
// performs the structural checks that do not depend on a resolved flag value
// (declared arguments exist, the flag argument is boolean, roles are known).
// The composer then operates on a validated, traversable Go representation
// and never touches HCL directly.
package model
