package model

import "fmt"

// Role is the closed set of account kinds. Every switch over Role must
// handle all three values; MustBeKnown panics on anything else.
type Role string

const (
	RoleUser   Role = "user"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

var roles = []Role{RoleUser, RoleArtist, RoleAdmin}

func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

func ParseRole(s string) (Role, error) {
	for _, r := range roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) MustBeKnown() Role {
	if !r.Valid() {
		panic(fmt.Sprintf("model: unknown role %q", string(r)))
	}
	return r
}

// HomePath 每個角色登入後的預設頁面
func (r Role) HomePath() string {
	switch r.MustBeKnown() {
	case RoleUser:
		return "/dashboard"
	case RoleArtist:
		return "/artist/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	}
	panic("unreachable")
}
