package handler

import (
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// --- Request → Service input ---

func toPostJobInput(req postJobRequest, clientID string) ports.PostJobInput {
	return ports.PostJobInput{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Budget:      req.Budget,
		Deadline:    req.Deadline,
	}
}

func toApplyInput(req applyRequest, jobID string, who identity) ports.ApplyInput {
	return ports.ApplyInput{
		JobID:          jobID,
		FreelancerID:   who.ID,
		FreelancerName: who.Name,
		CoverLetter:    req.CoverLetter,
		ProposedBudget: req.ProposedBudget,
	}
}

// --- Domain → HTTP response ---

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:    s.ID,
		Name:  s.Name,
		Email: s.Email,
		Role:  string(s.Role),
	}
}

func toJobResponse(j domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		ClientID:    j.ClientID,
		Title:       j.Title,
		Description: j.Description,
		Category:    string(j.Category),
		Budget:      j.Budget,
		Deadline:    j.Deadline,
		CreatedAt:   j.CreatedAt.UTC(),
		Links: jobLinks{
			Self:         "/v1/jobs/" + j.ID,
			Applications: "/v1/jobs/" + j.ID + "/applications",
		},
	}
}

func toJobListResponse(jobs []domain.Job) listJobsResponse {
	data := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		data[i] = toJobResponse(j)
	}
	return listJobsResponse{Data: data, Total: len(data)}
}

func toClientJobsResponse(rows []ports.ClientJobOverview) clientJobsResponse {
	data := make([]clientJobResponse, len(rows))
	for i, r := range rows {
		data[i] = clientJobResponse{
			jobResponse:  toJobResponse(r.Job),
			Applications: r.Applications,
			Pending:      r.Pending,
		}
	}
	return clientJobsResponse{Data: data}
}

func toApplicationResponse(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		FreelancerID:   a.FreelancerID,
		FreelancerName: a.FreelancerName,
		CoverLetter:    a.CoverLetter,
		ProposedBudget: a.ProposedBudget,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt.UTC(),
	}
}

func toApplicationResponses(apps []domain.Application) []applicationResponse {
	out := make([]applicationResponse, len(apps))
	for i, a := range apps {
		out[i] = toApplicationResponse(a)
	}
	return out
}

func toTallyResponse(t domain.StatusTally) tallyResponse {
	return tallyResponse{
		Pending:  t.Pending,
		Accepted: t.Accepted,
		Rejected: t.Rejected,
		Total:    t.Total(),
	}
}

func toConversationResponse(c *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID: c.ID,
		Participants: []participantResponse{
			{ID: c.Participants[0].ID, Name: c.Participants[0].Name},
			{ID: c.Participants[1].ID, Name: c.Participants[1].Name},
		},
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func toConversationListResponse(items []domain.ConversationSummary) listConversationsResponse {
	data := make([]conversationSummaryResponse, len(items))
	for i, s := range items {
		data[i] = conversationSummaryResponse{
			ID:              s.ID,
			Participant:     participantResponse{ID: s.Participant.ID, Name: s.Participant.Name},
			LastMessage:     s.LastMessage,
			LastMessageTime: s.LastMessageTime.UTC(),
			UnreadCount:     s.UnreadCount,
		}
	}
	return listConversationsResponse{Data: data}
}

func toMessageListResponse(msgs []domain.Message) listMessagesResponse {
	data := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		data[i] = messageResponse{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: m.SenderName,
			Content:    m.Content,
			Timestamp:  m.Timestamp.UTC(),
			Read:       m.Read,
		}
	}
	return listMessagesResponse{Data: data}
}
