// Package composer resolves a robot description document and a boolean
// composition flag into a single ordered inclusion list.
//
// Composition is a pure, single-pass transformation: the base content is
// always included first, and when the flag is true each referenced hardware
// fragment is included exactly once, in the fixed role order arm, head,
// gripper, base. The composer performs no I/O and holds no state; composing
// the same document and flag twice yields identical results.
//
// Failures never degrade: a missing base reference, a role referenced twice,
// or a role with no loaded fragment definition abort the pass with an error
// identifying the document and role, rather than returning a partially
// composed description.
package composer
