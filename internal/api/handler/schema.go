package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Identity ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=freelancer client"`
}

// loginRequest carries no validation tags: every malformed login must fail
// the same way a wrong password does.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

type currentSessionResponse struct {
	Session *sessionResponse `json:"session"`
}

// --- Jobs ---

type postJobRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category"    validate:"required,oneof=web mobile design writing marketing other"`
	Budget      float64 `json:"budget"      validate:"required,gt=0"`
	Deadline    string  `json:"deadline"    validate:"required,datetime=2006-01-02"`
}

type jobLinks struct {
	Self         string `json:"self"`
	Applications string `json:"applications"`
}

type jobResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Budget      float64   `json:"budget"`
	Deadline    string    `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
	Links       jobLinks  `json:"_links"`
}

type listJobsResponse struct {
	Data  []jobResponse `json:"data"`
	Total int           `json:"total"`
}

type clientJobResponse struct {
	jobResponse
	Applications int `json:"applications"`
	Pending      int `json:"pending"`
}

type clientJobsResponse struct {
	Data []clientJobResponse `json:"data"`
}

// --- Applications ---

type applyRequest struct {
	CoverLetter    string  `json:"cover_letter"    validate:"required"`
	ProposedBudget float64 `json:"proposed_budget" validate:"required,gt=0"`
}

type decisionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type applicationResponse struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	FreelancerID   string    `json:"freelancer_id"`
	FreelancerName string    `json:"freelancer_name"`
	CoverLetter    string    `json:"cover_letter"`
	ProposedBudget float64   `json:"proposed_budget"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type listApplicationsResponse struct {
	Data []applicationResponse `json:"data"`
}

type tallyResponse struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

type freelancerApplicationsResponse struct {
	Data  []applicationResponse `json:"data"`
	Tally tallyResponse         `json:"tally"`
}

// --- Messaging ---

type startConversationRequest struct {
	ParticipantID   string `json:"participant_id"   validate:"required"`
	ParticipantName string `json:"participant_name" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type participantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type conversationResponse struct {
	ID           string                `json:"id"`
	Participants []participantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
}

type conversationSummaryResponse struct {
	ID              string              `json:"id"`
	Participant     participantResponse `json:"participant"`
	LastMessage     string              `json:"last_message"`
	LastMessageTime time.Time           `json:"last_message_time"`
	UnreadCount     int                 `json:"unread_count"`
}

type listConversationsResponse struct {
	Data []conversationSummaryResponse `json:"data"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

type listMessagesResponse struct {
	Data []messageResponse `json:"data"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
