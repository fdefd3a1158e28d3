package model

import "fmt"

// Role identifies the hardware-interface subsystem a fragment contributes.
type Role string

const (
	RoleArm     Role = "arm"
	RoleHead    Role = "head"
	RoleGripper Role = "gripper"
	RoleBase    Role = "base"
)

// compositionOrder is the fixed order in which role fragments are included:
// arm, head, gripper, base. Later roles may reference driver names
// established earlier, so the order is a contract, not a convenience.
var compositionOrder = []Role{RoleArm, RoleHead, RoleGripper, RoleBase}

// CompositionOrder returns a copy of the canonical role inclusion order.
func CompositionOrder() []Role {
	out := make([]Role, len(compositionOrder))
	copy(out, compositionOrder)
	return out
}

// ParseRole validates a raw role tag against the closed role set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleArm, RoleHead, RoleGripper, RoleBase:
		return r, nil
	}
	return "", fmt.Errorf("unknown hardware role %q", s)
}
