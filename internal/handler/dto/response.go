package dto

import (
	"time"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/service"
)

// DataResponse is the standard success envelope for list and mutation endpoints.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// NewDataResponse wraps payload data in the success envelope.
func NewDataResponse(data interface{}) DataResponse {
	return DataResponse{Success: true, Data: data}
}

// UserResponse is the admin identity returned by auth endpoints.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AgentResponse represents one agent in API responses.
type AgentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemResponse represents one contact item in API responses.
type ItemResponse struct {
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// DistributionResponse represents one agent's share of an uploaded list.
type DistributionResponse struct {
	AgentID       string         `json:"agentId"`
	AgentName     string         `json:"agentName"`
	AgentEmail    string         `json:"agentEmail"`
	AssignedCount int            `json:"assignedCount"`
	Items         []ItemResponse `json:"items"`
}

// ListResponse represents one uploaded list with its distributions.
type ListResponse struct {
	ID            string                 `json:"id"`
	FileName      string                 `json:"fileName"`
	TotalItems    int                    `json:"totalItems"`
	CreatedAt     time.Time              `json:"createdAt"`
	Distributions []DistributionResponse `json:"distributions"`
}

// UploadResponse is the data payload of a successful upload.
type UploadResponse struct {
	ListID        string                 `json:"listId"`
	FileName      string                 `json:"fileName"`
	TotalItems    int                    `json:"totalItems"`
	Distributions []DistributionResponse `json:"distributions"`
}

// StatsResponse is the dashboard aggregate payload.
type StatsResponse struct {
	TotalAgents int            `json:"totalAgents"`
	TotalLists  int            `json:"totalLists"`
	TotalItems  int            `json:"totalItems"`
	RecentLists []ListResponse `json:"recentLists"`
}

// ToUserResponse converts a domain.Admin to UserResponse.
func ToUserResponse(admin *domain.Admin) UserResponse {
	return UserResponse{ID: admin.ID, Email: admin.Email}
}

// ToAgentResponse converts a domain.Agent to AgentResponse.
func ToAgentResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:        agent.ID,
		Name:      agent.Name,
		Email:     agent.Email,
		Mobile:    agent.Mobile,
		IsActive:  agent.IsActive,
		CreatedAt: agent.CreatedAt,
	}
}

// ToAgentResponses converts a slice of agents.
func ToAgentResponses(agents []*domain.Agent) []AgentResponse {
	out := make([]AgentResponse, len(agents))
	for i, agent := range agents {
		out[i] = ToAgentResponse(agent)
	}
	return out
}

// ToDistributionResponse converts a domain.Distribution.
func ToDistributionResponse(dist *domain.Distribution) DistributionResponse {
	items := make([]ItemResponse, len(dist.Items))
	for i, item := range dist.Items {
		items[i] = ItemResponse{
			FirstName: item.FirstName,
			Phone:     item.Phone,
			Notes:     item.Notes,
		}
	}
	return DistributionResponse{
		AgentID:       dist.AgentID,
		AgentName:     dist.AgentName,
		AgentEmail:    dist.AgentEmail,
		AssignedCount: dist.AssignedCount,
		Items:         items,
	}
}

// ToListResponse converts a domain.UploadedList.
func ToListResponse(list *domain.UploadedList) ListResponse {
	dists := make([]DistributionResponse, len(list.Distributions))
	for i := range list.Distributions {
		dists[i] = ToDistributionResponse(&list.Distributions[i])
	}
	return ListResponse{
		ID:            list.ID,
		FileName:      list.FileName,
		TotalItems:    list.TotalItems,
		CreatedAt:     list.CreatedAt,
		Distributions: dists,
	}
}

// ToListResponses converts a slice of lists.
func ToListResponses(lists []*domain.UploadedList) []ListResponse {
	out := make([]ListResponse, len(lists))
	for i, list := range lists {
		out[i] = ToListResponse(list)
	}
	return out
}

// ToUploadResponse converts a freshly created list into the upload payload.
func ToUploadResponse(list *domain.UploadedList) UploadResponse {
	resp := ToListResponse(list)
	return UploadResponse{
		ListID:        resp.ID,
		FileName:      resp.FileName,
		TotalItems:    resp.TotalItems,
		Distributions: resp.Distributions,
	}
}

// ToStatsResponse converts service stats plus the recent lists slice.
func ToStatsResponse(stats *service.Stats, recent []*domain.UploadedList) StatsResponse {
	return StatsResponse{
		TotalAgents: stats.TotalAgents,
		TotalLists:  stats.TotalLists,
		TotalItems:  stats.TotalItems,
		RecentLists: ToListResponses(recent),
	}
}
