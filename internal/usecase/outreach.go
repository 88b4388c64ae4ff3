package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/infra/mail"
	"github.com/xavierca1/lead-outreach/internal/infra/metrics"
	"github.com/xavierca1/lead-outreach/internal/infra/queue"
	"github.com/xavierca1/lead-outreach/internal/infra/templates"
)

const errMissingEmail = "lead has no email address"

// Metric labels for the kind of send.
const (
	KindSingle   = "single"
	KindBulk     = "bulk"
	KindSweep    = "sweep"
	KindFollowUp = "follow_up"
)

type OutreachOptions struct {
	FromAddress   string
	DefaultSender entity.SenderConfig
	SendDelay     time.Duration
}

type OutreachUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	Composer  MessageComposer
	Transport mail.Transport
	LogWriter *ActivityLogWriter
	Events    queue.EventPublisherInterface
	Selector  *FollowUpSelector
	Opts      OutreachOptions
	Log       zerolog.Logger

	Now   func() time.Time
	Pause func(ctx context.Context, d time.Duration)
}

func NewOutreachUseCase(
	leadRepo entity.LeadRepositoryInterface,
	composer MessageComposer,
	transport mail.Transport,
	logWriter *ActivityLogWriter,
	events queue.EventPublisherInterface,
	selector *FollowUpSelector,
	opts OutreachOptions,
	log zerolog.Logger,
) *OutreachUseCase {
	if events == nil {
		events = queue.NoopPublisher{}
	}
	return &OutreachUseCase{
		LeadRepo:  leadRepo,
		Composer:  composer,
		Transport: transport,
		LogWriter: logWriter,
		Events:    events,
		Selector:  selector,
		Opts:      opts,
		Log:       log,
		Now:       func() time.Time { return time.Now().UTC() },
		Pause:     sleep,
	}
}

// sleep waits d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// attempt is the unit every send path goes through: compose, deliver, log,
// and (when touch is set and delivery succeeded) stamp the stored lead.
type attempt struct {
	kind     string
	followUp bool
	touch    bool
}

// SendToLead runs one outreach send for a stored lead. It never fails: every
// outcome is reported in the result.
func (uc *OutreachUseCase) SendToLead(ctx context.Context, lead *entity.Lead, sender entity.SenderConfig) SendResult {
	return uc.send(ctx, lead, sender, attempt{kind: KindSingle, touch: true})
}

// SendToLeadByID loads the lead first; only the lookup can fail.
func (uc *OutreachUseCase) SendToLeadByID(ctx context.Context, id string, sender entity.SenderConfig) (SendResult, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, id)
	if err != nil {
		return SendResult{}, err
	}
	return uc.SendToLead(ctx, lead, sender), nil
}

// SendBulk sends to caller-supplied leads. The leads are not persisted and no
// lead row is updated; only log entries are written.
func (uc *OutreachUseCase) SendBulk(ctx context.Context, leads []entity.Lead, sender entity.SenderConfig) (BulkResult, error) {
	if len(leads) == 0 {
		return BulkResult{}, ErrNoLeads
	}
	ptrs := make([]*entity.Lead, len(leads))
	for i := range leads {
		ptrs[i] = &leads[i]
	}
	res := uc.batch(ctx, ptrs, sender, attempt{kind: KindBulk})
	uc.Log.Info().Int("total", res.Total).Int("sent", res.Sent).Int("failed", res.Failed).Msg("bulk send finished")
	return res, nil
}

// SendToStored sends to stored leads and stamps each successful one. Used by the sweep.
func (uc *OutreachUseCase) SendToStored(ctx context.Context, leads []*entity.Lead, sender entity.SenderConfig) BulkResult {
	return uc.batch(ctx, leads, sender, attempt{kind: KindSweep, touch: true})
}

// SendFollowUps mails the follow-up template to every unconverted contact,
// skipping anyone already followed up inside the stale window.
func (uc *OutreachUseCase) SendFollowUps(ctx context.Context, sender entity.SenderConfig) (BulkResult, error) {
	if uc.Selector == nil {
		return BulkResult{}, errors.New("follow-up selector not configured")
	}
	contacts, err := uc.Selector.UnconvertedContacts(ctx)
	if err != nil {
		return BulkResult{}, err
	}

	now := uc.Now()
	leads := make([]*entity.Lead, 0, len(contacts))
	skipped := 0
	for _, c := range contacts {
		if c.Status == entity.EmailFollowUp && now.Sub(c.SentAt) < StaleWindow {
			skipped++
			continue
		}
		leads = append(leads, contactAsLead(c))
	}

	res := uc.batch(ctx, leads, sender, attempt{kind: KindFollowUp, followUp: true})
	res.Skipped = skipped
	uc.Log.Info().
		Int("contacts", len(contacts)).
		Int("skipped", skipped).
		Int("sent", res.Sent).
		Int("failed", res.Failed).
		Msg("follow-up send finished")
	return res, nil
}

func contactAsLead(c UnconvertedContact) *entity.Lead {
	name := c.Name
	if strings.EqualFold(name, c.Email) {
		name = ""
	}
	return &entity.Lead{
		Email:    c.Email,
		Name:     name,
		Address:  c.Address,
		Category: c.Category,
	}
}

// batch sends sequentially with a fixed pause between consecutive deliveries.
// Leads without an email count as failed and are never composed or sent.
func (uc *OutreachUseCase) batch(ctx context.Context, leads []*entity.Lead, sender entity.SenderConfig, a attempt) BulkResult {
	res := BulkResult{Total: len(leads), Results: make([]SendResult, 0, len(leads))}

	delivered := false
	for _, lead := range leads {
		if strings.TrimSpace(lead.Email) == "" {
			res.Failed++
			res.Results = append(res.Results, SendResult{Error: errMissingEmail})
			metrics.RecordEmailOutcome(a.kind, string(entity.EmailFailed))
			continue
		}

		if delivered {
			uc.Pause(ctx, uc.Opts.SendDelay)
		}
		delivered = true

		r := uc.send(ctx, lead, sender, a)
		if r.Success {
			res.Sent++
		} else {
			res.Failed++
		}
		res.Results = append(res.Results, r)
	}

	res.Success = res.Sent > 0 || res.Total == 0
	return res
}

func (uc *OutreachUseCase) send(ctx context.Context, lead *entity.Lead, sender entity.SenderConfig, a attempt) SendResult {
	sender = sender.WithDefaults(uc.Opts.DefaultSender)
	result := SendResult{Email: lead.Email}

	var (
		msg templates.Message
		err error
	)
	if a.followUp {
		msg, err = uc.Composer.ComposeFollowUp(lead, sender)
	} else {
		msg, err = uc.Composer.Compose(lead, sender)
	}
	if err != nil {
		err = fmt.Errorf("compose message: %w", err)
	} else if strings.TrimSpace(lead.Email) == "" {
		err = errors.New(errMissingEmail)
	} else {
		_, err = uc.Transport.Send(ctx, mail.Envelope{
			FromName:    sender.Name,
			FromAddress: uc.Opts.FromAddress,
			To:          lead.Email,
			Subject:     msg.Subject,
			Body:        msg.Body,
		})
	}
	result.Subject = msg.Subject

	at := uc.Now()
	status := entity.EmailSent
	if a.followUp {
		status = entity.EmailFollowUp
	}
	if err != nil {
		status = entity.EmailFailed
		result.Error = errorMessage(err)
		uc.Log.Warn().Err(err).Str("email", lead.Email).Str("kind", a.kind).Msg("outreach email not delivered")
	} else {
		result.Success = true
	}

	uc.LogWriter.Record(ctx, lead, msg.Subject, status, result.Error, at)
	uc.publish(ctx, lead, msg.Subject, status, result.Error, at)
	metrics.RecordEmailOutcome(a.kind, string(status))

	if result.Success && a.touch && lead.ID != "" {
		if err := uc.LeadRepo.MarkContacted(ctx, lead.ID, at); err != nil {
			// The email is out; the stale timestamp is accepted and left as is.
			uc.Log.Error().Err(err).Str("lead_id", lead.ID).Msg("email sent but lead not marked contacted")
		} else {
			lead.LastContactedDate = &at
			lead.Status = entity.StatusContacted
		}
	}

	return result
}

func (uc *OutreachUseCase) publish(ctx context.Context, lead *entity.Lead, subject string, status entity.EmailStatus, errMsg string, at time.Time) {
	err := uc.Events.PublishOutreach(ctx, queue.OutreachEvent{
		LeadID:   lead.ID,
		Email:    lead.Email,
		Name:     lead.DisplayName(),
		Category: string(lead.Category),
		Subject:  subject,
		Status:   string(status),
		Error:    errMsg,
		SentAt:   at,
	})
	if err != nil {
		uc.Log.Warn().Err(err).Str("email", lead.Email).Msg("outreach event not published")
	}
}

func errorMessage(err error) string {
	var de *mail.DeliveryError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
