package domain

// Caller identifies who is searching. The zero value is an anonymous caller.
// Token validation happens upstream; by the time a Caller reaches the engine
// it is either anonymous or a verified user ID.
type Caller struct {
	UserID string
}

// Anonymous reports whether the caller carries no user identity.
func (c Caller) Anonymous() bool { return c.UserID == "" }
