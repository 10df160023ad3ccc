package theme

// Role classifies a decorated fragment so each theme can style it.
type Role int

const (
	RolePath Role = iota
	RoleEmpty
	RoleScalarType
	RoleString
	RoleInt
	RoleFloat
	RoleBool
	RoleNull
	RoleResource
	RoleKeyword
	RoleMeta
	RoleArrow
	RoleVisibility
	RoleRecursion
	RoleMore
	roleCount
)

var roleNames = [roleCount]string{
	RolePath:       "path",
	RoleEmpty:      "empty",
	RoleScalarType: "scalar",
	RoleString:     "string",
	RoleInt:        "int",
	RoleFloat:      "float",
	RoleBool:       "bool",
	RoleNull:       "null",
	RoleResource:   "resource",
	RoleKeyword:    "keyword",
	RoleMeta:       "meta",
	RoleArrow:      "arrow",
	RoleVisibility: "visibility",
	RoleRecursion:  "recursion",
	RoleMore:       "more",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "unknown"
	}
	return roleNames[r]
}

// ParseRole returns the role with the given name.
func ParseRole(name string) (Role, bool) {
	for r, n := range roleNames {
		if n == name {
			return Role(r), true
		}
	}
	return 0, false
}
