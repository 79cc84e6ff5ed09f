package auth

// Claims es la identidad del planner que hace el request.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
