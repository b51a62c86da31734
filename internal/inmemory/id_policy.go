package inmemory

import "fmt"

// IdPolicy decides how Create picks the next identifier.
type IdPolicy string

const (
	// IdPolicyMonotonic never reissues an identifier, even after the record holding it was deleted.
	IdPolicyMonotonic IdPolicy = "monotonic"
	// IdPolicyMaxPlusOne uses the highest identifier currently in the collection plus one.
	// Deleting the record with the highest identifier makes the next Create reuse it.
	IdPolicyMaxPlusOne IdPolicy = "max-plus-one"
)

func (p IdPolicy) Valid() bool {
	return p == IdPolicyMonotonic || p == IdPolicyMaxPlusOne
}

func ParseIdPolicy(s string) (IdPolicy, error) {
	p := IdPolicy(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown id policy %q, expected %q or %q", s, IdPolicyMonotonic, IdPolicyMaxPlusOne)
	}
	return p, nil
}
