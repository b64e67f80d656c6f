package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gigboard/marketplace/internal/core/domain"
)

func TestDecisionFilter(t *testing.T) {
	oneWay := decisionFilter("7", false)
	if oneWay["_id"] != "7" || oneWay["status"] != string(domain.StatusPending) {
		t.Fatalf("one-way filter must pin the pending status, got %v", oneWay)
	}

	revisable := decisionFilter("7", true)
	if _, ok := revisable["status"]; ok || revisable["_id"] != "7" {
		t.Fatalf("revisable filter must match on id only, got %v", revisable)
	}
}

// The repositories filter and sort on _id, seq and status; the document
// tags must produce exactly those field names.
func TestApplicationDoc_FieldNames(t *testing.T) {
	created := time.Date(2023, 10, 5, 9, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(applicationDoc{
		ID: "3", Seq: 3, JobID: "1", FreelancerID: "1", FreelancerName: "John",
		CoverLetter: "c", ProposedBudget: 450, Status: "pending", CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, name := range []string{"_id", "seq", "job_id", "freelancer_id", "status", "created_at"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing field %q in %v", name, fields)
		}
	}

	var doc applicationDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal doc: %v", err)
	}
	app := doc.toDomain()
	if app.ID != "3" || app.Status != domain.StatusPending || !app.CreatedAt.Equal(created) || app.CreatedAt.Location() != time.UTC {
		t.Fatalf("unexpected application %+v", app)
	}
}

func TestSessionDoc(t *testing.T) {
	jane := domain.Session{ID: "2", Name: "Jane Client", Email: "jane@example.com", Role: domain.RoleClient}
	doc := newSessionDoc("user", jane, time.Now())
	if doc.Key != "user" {
		t.Fatalf("slot key must be the document id, got %q", doc.Key)
	}

	got, err := doc.toDomain()
	if err != nil || *got != jane {
		t.Fatalf("toDomain: %+v, %v", got, err)
	}

	for _, bad := range []sessionDoc{
		{Key: "user", AccountID: "", Role: "client"},
		{Key: "user", AccountID: "2", Role: "admin"},
	} {
		if got, err := bad.toDomain(); err == nil || got != nil {
			t.Fatalf("%+v: expected a malformed-session error, got (%+v, %v)", bad, got, err)
		}
	}
}
