package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"hussboss/models"
	"hussboss/services/backend"
	"hussboss/services/backend/backendtest"
)

func TestMarkAssigned_RefetchesList(t *testing.T) {
	srv := backendtest.NewServer(t)
	srv.AddRequest(models.ServiceRequestRecord{ID: 41, Status: models.StatusPending, ServiceType: "Painter"})
	srv.AddRequest(models.ServiceRequestRecord{ID: 42, Status: models.StatusPending, ServiceType: "Plumber"})
	svc := NewRequests(backend.NewHTTPClient(srv.URL, 5*time.Second, nil), nil)

	records, err := svc.MarkAssigned(context.Background(), 42)
	if err != nil {
		t.Fatalf("MarkAssigned: %v", err)
	}
	if n := srv.Calls("GET /admin/requests"); n != 1 {
		t.Errorf("list fetches = %d, want 1", n)
	}

	statuses := map[int]string{}
	for _, rec := range records {
		statuses[rec.ID] = rec.Status
	}
	if statuses[42] != models.StatusAssigned {
		t.Errorf("request 42 status = %q, want Assigned", statuses[42])
	}
	if statuses[41] != models.StatusPending {
		t.Errorf("request 41 status = %q, want Pending", statuses[41])
	}
}

func TestMarkAssigned_FailureSkipsRefetch(t *testing.T) {
	srv := backendtest.NewServer(t)
	svc := NewRequests(backend.NewHTTPClient(srv.URL, 5*time.Second, nil), nil)

	_, err := svc.MarkAssigned(context.Background(), 7)
	if !backend.IsNotFound(err) {
		t.Fatalf("err = %v, want 404", err)
	}
	if n := srv.Calls("GET /admin/requests"); n != 0 {
		t.Errorf("list fetches = %d, want 0", n)
	}
}

func TestMarkAssigned_ReloadFailure(t *testing.T) {
	srv := backendtest.NewServer(t)
	srv.AddRequest(models.ServiceRequestRecord{ID: 42, Status: models.StatusPending})
	srv.FailNext("GET /admin/requests", 1)
	svc := NewRequests(backend.NewHTTPClient(srv.URL, 5*time.Second, nil), nil)

	_, err := svc.MarkAssigned(context.Background(), 42)
	if !errors.Is(err, ErrReloadFailed) {
		t.Fatalf("err = %v, want ErrReloadFailed", err)
	}
	if rec, _ := srv.Request(42); rec.Status != models.StatusAssigned {
		t.Errorf("status = %q, want Assigned", rec.Status)
	}

	_, err = svc.MarkAssigned(context.Background(), 7)
	if errors.Is(err, ErrReloadFailed) {
		t.Errorf("failed update reported as reload failure: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize([]models.ServiceRequestRecord{
		{Status: models.StatusPending},
		{Status: models.StatusAssigned},
		{Status: models.StatusPending},
		{Status: models.StatusCompleted},
	})
	if stats != (Stats{Total: 4, Pending: 2, Assigned: 1}) {
		t.Errorf("stats = %+v", stats)
	}
}
