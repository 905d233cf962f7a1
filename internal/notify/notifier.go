package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dropDatabas3/certero/internal/observability/logger"
	"github.com/dropDatabas3/certero/internal/store/core"
	"github.com/dropDatabas3/certero/internal/util"
)

// Notifier envía digests periódicos con los certificados por vencer.
type Notifier struct {
	repo       core.CertificateRepository
	sender     Sender
	recipients []string

	// Interval es cada cuánto se evalúa el digest.
	Interval time.Duration
	// Window define qué tan adelante se mira: se reportan certificados
	// cuyo not_after cae dentro de [ahora, ahora+Window].
	Window time.Duration
	// SkipWeekends saltea la corrida cuando el día es sábado o domingo.
	SkipWeekends bool

	// now es inyectable para tests.
	now func() time.Time
}

func NewNotifier(repo core.CertificateRepository, sender Sender, recipients []string) *Notifier {
	return &Notifier{
		repo:       repo,
		sender:     sender,
		recipients: recipients,
		Interval:   24 * time.Hour,
		Window:     30 * 24 * time.Hour,
		now:        time.Now,
	}
}

var digestHTML = template.Must(template.New("digest").Parse(`<h2>Certificados por vencer</h2>
<table border="1" cellpadding="4">
<tr><th>Nombre</th><th>Fingerprint</th><th>Vence</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.FingerprintHex}}</td><td>{{.NotAfter.Format "2006-01-02"}}</td></tr>
{{end}}</table>
<p>Referencia: {{.Ref}}</p>`))

type digestData struct {
	Items []core.CertificateRecord
	Ref   string
}

// Run ejecuta el loop de notificación hasta que el contexto se cancele.
// Cada tick evalúa RunOnce; los errores se loguean y no cortan el loop.
func (n *Notifier) Run(ctx context.Context) error {
	log := logger.Named("notify")
	ticker := time.NewTicker(n.Interval)
	defer ticker.Stop()

	log.Info("notifier started",
		logger.String("interval", n.Interval.String()),
		logger.String("window", n.Window.String()))

	for {
		select {
		case <-ctx.Done():
			log.Info("notifier stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := n.RunOnce(ctx); err != nil {
				log.Error("digest run failed", logger.Err(err))
			}
		}
	}
}

// RunOnce arma y envía el digest una vez. Devuelve cuántos certificados
// se reportaron; cero significa que no se envió nada.
func (n *Notifier) RunOnce(ctx context.Context) (int, error) {
	log := logger.From(ctx).With(logger.Layer("notify"), logger.Op("Notifier.RunOnce"))

	today := n.now()
	if n.SkipWeekends && util.IsWeekend(today) {
		log.Debug("skipping weekend run")
		return 0, nil
	}

	expiring, err := n.repo.ListExpiring(ctx, today.Add(n.Window))
	if err != nil {
		return 0, fmt.Errorf("list expiring: %w", err)
	}
	if len(expiring) == 0 {
		return 0, nil
	}

	// Referencia única por corrida, útil para correlacionar reportes.
	ref := util.RandomChallenge()
	subject := fmt.Sprintf("[certero] %d certificado(s) vencen dentro de %s", len(expiring), n.Window)

	var html strings.Builder
	if err := digestHTML.Execute(&html, digestData{Items: expiring, Ref: ref}); err != nil {
		return 0, fmt.Errorf("render digest: %w", err)
	}
	text := renderText(expiring, ref)

	for _, to := range n.recipients {
		if err := n.sender.Send(to, subject, html.String(), text); err != nil {
			return 0, fmt.Errorf("send to %s: %w", to, err)
		}
	}

	log.Info("digest sent",
		logger.Count(len(expiring)),
		logger.Int("recipients", len(n.recipients)))
	return len(expiring), nil
}

func renderText(items []core.CertificateRecord, ref string) string {
	var b strings.Builder
	b.WriteString("Certificados por vencer:\n\n")
	for _, rec := range items {
		fmt.Fprintf(&b, "- %s (%s) vence %s\n", rec.Name, rec.FingerprintHex, rec.NotAfter.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "\nReferencia: %s\n", ref)
	return b.String()
}
