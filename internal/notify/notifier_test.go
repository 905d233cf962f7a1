package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dropDatabas3/certero/internal/store/core"
)

type stubRepo struct {
	core.CertificateRepository

	expiring []core.CertificateRecord
}

func (s *stubRepo) ListExpiring(ctx context.Context, before time.Time) ([]core.CertificateRecord, error) {
	return s.expiring, nil
}

type captureSender struct {
	to      []string
	subject string
	html    string
	text    string
}

func (c *captureSender) Send(to, subject, htmlBody, textBody string) error {
	c.to = append(c.to, to)
	c.subject = subject
	c.html = htmlBody
	c.text = textBody
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRunOnceSendsDigest(t *testing.T) {
	repo := &stubRepo{expiring: []core.CertificateRecord{
		{Name: "web-tls", FingerprintHex: "aa11", NotAfter: time.Now().Add(5 * 24 * time.Hour)},
		{Name: "api-tls", FingerprintHex: "bb22", NotAfter: time.Now().Add(9 * 24 * time.Hour)},
	}}
	sender := &captureSender{}

	n := NewNotifier(repo, sender, []string{"ops@example.com", "sec@example.com"})
	// Un miércoles
	n.now = fixedClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	sent, err := n.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 2 {
		t.Fatalf("sent = %d, esperaba 2", sent)
	}
	if len(sender.to) != 2 {
		t.Fatalf("destinatarios = %v", sender.to)
	}
	if !strings.Contains(sender.text, "web-tls") || !strings.Contains(sender.text, "api-tls") {
		t.Fatalf("digest texto incompleto:\n%s", sender.text)
	}
	if !strings.Contains(sender.html, "aa11") {
		t.Fatalf("digest html incompleto:\n%s", sender.html)
	}
	if !strings.Contains(sender.subject, "2 certificado") {
		t.Fatalf("subject: %q", sender.subject)
	}
}

func TestRunOnceEmptyInventory(t *testing.T) {
	sender := &captureSender{}
	n := NewNotifier(&stubRepo{}, sender, []string{"ops@example.com"})
	n.now = fixedClock(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	sent, err := n.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 0 || len(sender.to) != 0 {
		t.Fatalf("no debería enviar nada: sent=%d to=%v", sent, sender.to)
	}
}

func TestRunOnceSkipsWeekend(t *testing.T) {
	repo := &stubRepo{expiring: []core.CertificateRecord{{Name: "x"}}}
	sender := &captureSender{}

	n := NewNotifier(repo, sender, []string{"ops@example.com"})
	n.SkipWeekends = true
	// Un sábado
	n.now = fixedClock(time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC))

	sent, err := n.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 0 || len(sender.to) != 0 {
		t.Fatal("corrida de fin de semana debería saltearse")
	}

	// El mismo inventario un lunes sí dispara.
	n.now = fixedClock(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
	sent, err = n.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sent != 1 {
		t.Fatalf("lunes: sent=%d", sent)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	n := NewNotifier(&stubRepo{}, &captureSender{}, nil)
	n.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
}
