package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/tigreau/nto-music/pkg/apierror"
)

func TestGetNotifications(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":2,"message":"Your order shipped","type":"ORDER_SHIPPED","timestamp":"2025-03-02T09:00:00Z","read":false,"relatedEntityId":44},
			{"id":1,"message":"Price drop on Stratocaster","type":"PRICE_DROP","timestamp":"2025-03-01T09:00:00Z","read":true}
		]`))
	})
	pointClientAt(t, mux)

	notifications, err := GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("GetNotifications failed: %v", err)
	}

	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	if notifications[0].ID != 2 || notifications[0].Type != NotificationOrderShipped {
		t.Errorf("unexpected first notification: %+v", notifications[0])
	}
	if notifications[0].RelatedEntityID != 44 {
		t.Errorf("relatedEntityId should be preserved, got %d", notifications[0].RelatedEntityID)
	}
	if !notifications[1].Read {
		t.Error("read flag should be preserved")
	}
}

func TestMarkNotificationRead(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	pointClientAt(t, mux)

	if err := MarkNotificationRead(context.Background(), 17); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if gotPath != "/api/notifications/17/read" {
		t.Errorf("unexpected path: %s", gotPath)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	pointClientAt(t, mux)

	if err := MarkAllNotificationsRead(context.Background()); err != nil {
		t.Fatalf("MarkAllNotificationsRead failed: %v", err)
	}
}

func TestDeleteNotification_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"RESOURCE_NOT_FOUND","message":"Notification not found"}`))
	})
	pointClientAt(t, mux)

	err := DeleteNotification(context.Background(), 99)
	if !apierror.IsNotFound(err) {
		t.Errorf("expected RESOURCE_NOT_FOUND, got %v", err)
	}
}

func TestStreamURL(t *testing.T) {
	srv := pointClientAt(t, http.NewServeMux())

	if StreamURL() != srv.URL+"/api/notifications/stream" {
		t.Errorf("unexpected stream URL: %s", StreamURL())
	}
}
