package domain

// Role роль пользователя, передаётся шлюзом в заголовке X-User-Role
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// ParseRole разбирает роль из заголовка; пустая или неизвестная роль считается клиентской
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleClient
}

// IsAdmin роль администратора студии
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
