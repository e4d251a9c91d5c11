package dto

// CredentialsRequest represents the body of POST /auth/login and /auth/register.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAgentRequest represents the body of POST /agents.
type CreateAgentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}
