package weather

import (
	"context"
	"errors"
	"testing"
)

type stubGateway struct {
	calls []string
	snap  Snapshot
	err   error
}

func (s *stubGateway) FetchWeather(ctx context.Context, city string) (Snapshot, error) {
	s.calls = append(s.calls, city)
	return s.snap, s.err
}

func TestServiceRejectsBlankInput(t *testing.T) {
	gw := &stubGateway{}
	svc := NewService(gw, nil)

	_, err := svc.FetchWeather(context.Background(), "   ")
	if KindOf(err) != KindEmptyInput {
		t.Fatalf("expected kind %q, got %q", KindEmptyInput, KindOf(err))
	}
	if MessageOf(err) != MsgEmptyInput {
		t.Errorf("expected message %q, got %q", MsgEmptyInput, MessageOf(err))
	}
	if len(gw.calls) != 0 {
		t.Errorf("expected no gateway calls, got %v", gw.calls)
	}
}

func TestServiceTrimsAndDelegates(t *testing.T) {
	gw := &stubGateway{snap: Snapshot{City: "Oslo"}}
	svc := NewService(gw, nil)

	snap, err := svc.FetchWeather(context.Background(), "  oslo ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.City != "Oslo" {
		t.Errorf("expected Oslo, got %q", snap.City)
	}
	if len(gw.calls) != 1 || gw.calls[0] != "oslo" {
		t.Errorf("expected one call with %q, got %v", "oslo", gw.calls)
	}
}

func TestServicePropagatesGatewayError(t *testing.T) {
	gw := &stubGateway{err: StatusError(404)}
	svc := NewService(gw, nil)

	_, err := svc.FetchWeather(context.Background(), "Atlantis")
	if KindOf(err) != KindNotFound {
		t.Errorf("expected kind %q, got %q", KindNotFound, KindOf(err))
	}
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewError(KindTimeout, nil))
	if KindOf(wrapped) != KindTimeout {
		t.Errorf("expected kind %q through wrapping, got %q", KindTimeout, KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Errorf("expected kind %q for plain error", KindUnknown)
	}
}

func TestStatusErrorServerMessage(t *testing.T) {
	err := StatusError(503)
	if err.Kind != KindServer || err.Status != 503 {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err.Message != "Server error (503). Please try again later." {
		t.Errorf("unexpected message %q", err.Message)
	}
}
