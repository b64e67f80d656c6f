package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/ports"
	"github.com/gigboard/marketplace/internal/core/service"
	"github.com/gigboard/marketplace/internal/infrastructure/db/memory"
)

// syncQueue delivers immediately so tests can observe the result.
type syncQueue struct {
	svc    ports.MessageService
	queued []ports.SendMessageInput
}

func (q *syncQueue) Enqueue(msg ports.SendMessageInput) {
	q.queued = append(q.queued, msg)
	_, _ = q.svc.Deliver(context.Background(), msg)
}

func TestMessageHandler_Flow(t *testing.T) {
	svc := service.NewMessageService(memory.NewMessageRepository(), zerolog.Nop())
	queue := &syncQueue{svc: svc}
	h := NewMessageHandler(svc, queue)

	c, rec := newContext(http.MethodPost, "/v1/conversations",
		`{"participant_id":"2","participant_name":"Jane Client"}`, freelancerJohn)
	if err := h.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)
	convID := decode(t, rec)["id"].(string)

	c, rec = newContext(http.MethodPost, "/v1/conversations/"+convID+"/messages", `{"content":"Hi Jane"}`, freelancerJohn)
	c.SetParamNames("id")
	c.SetParamValues(convID)
	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusAccepted)
	if len(queue.queued) != 1 || queue.queued[0].SenderName != freelancerJohn.Name {
		t.Fatalf("unexpected queue contents: %+v", queue.queued)
	}

	c, rec = newContext(http.MethodGet, "/v1/conversations", "", clientJane)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	items := decode(t, rec)["data"].([]any)
	summary := items[0].(map[string]any)
	if len(items) != 1 || summary["unread_count"].(float64) != 1 || summary["last_message"] != "Hi Jane" {
		t.Fatalf("unexpected conversations: %s", rec.Body.String())
	}

	c, rec = newContext(http.MethodGet, "/v1/conversations/"+convID+"/messages", "", clientJane)
	c.SetParamNames("id")
	c.SetParamValues(convID)
	if err := h.Messages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	msgs := decode(t, rec)["data"].([]any)
	if len(msgs) != 1 || msgs[0].(map[string]any)["read"] != true {
		t.Fatalf("unexpected messages: %s", rec.Body.String())
	}
}

func TestMessageHandler_Send_Outsider(t *testing.T) {
	svc := service.NewMessageService(memory.NewMessageRepository(), zerolog.Nop())
	queue := &syncQueue{svc: svc}
	h := NewMessageHandler(svc, queue)

	c, rec := newContext(http.MethodPost, "/v1/conversations",
		`{"participant_id":"2","participant_name":"Jane Client"}`, freelancerJohn)
	_ = h.Start(c)
	convID := decode(t, rec)["id"].(string)

	outsider := &identity{ID: "3", Name: "Val", Role: "freelancer"}
	c, rec = newContext(http.MethodPost, "/v1/conversations/"+convID+"/messages", `{"content":"hello"}`, outsider)
	c.SetParamNames("id")
	c.SetParamValues(convID)
	_ = h.Send(c)
	expectStatus(t, rec, http.StatusForbidden)
	if len(queue.queued) != 0 {
		t.Fatal("outsider message must not be queued")
	}

	c, rec = newContext(http.MethodPost, "/v1/conversations/missing/messages", `{"content":"hello"}`, freelancerJohn)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	_ = h.Send(c)
	expectStatus(t, rec, http.StatusNotFound)
}
