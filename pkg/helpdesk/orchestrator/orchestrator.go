package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/entity"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/internal/repository/contract"
	"ai-helpdesk-be/internal/repository/memory"
	"ai-helpdesk-be/pkg/events"
	"ai-helpdesk-be/pkg/helpdesk/access"
	"ai-helpdesk-be/pkg/helpdesk/delivery"
	"ai-helpdesk-be/pkg/helpdesk/scope"
	"ai-helpdesk-be/pkg/helpdesk/session"
	"ai-helpdesk-be/pkg/qa"
	"ai-helpdesk-be/pkg/store"

	"github.com/go-playground/validator/v10"
)

// CasePublisher hands a finished case to the closure pipeline (summary email,
// log finalization). Publishing is fire-and-forget for the orchestrator.
type CasePublisher interface {
	PublishCaseClosed(ctx context.Context, msg *dto.CaseClosedMessage) error
}

// EventPublisher pushes lifecycle events to the external bus. May be nil when
// the bus is unavailable; events are best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Orchestrator drives the per-identity session state machine: scope
// resolution, access gating, answer production, the closing sub-flow.
// All collaborator failures stop here; every inbound message gets a reply.
type Orchestrator struct {
	sessions    *session.Store
	resolver    *scope.Resolver
	gate        *access.Gate
	directory   *memory.DirectoryCache
	answerCache *memory.AnswerCache
	engine      qa.Engine
	summarizer  qa.Summarizer
	delivery    *delivery.Manager
	transcripts contract.TranscriptRepository
	casePub     CasePublisher
	eventPub    EventPublisher
	logger      logger.ILogger
	validate    *validator.Validate

	qaTimeout      time.Duration
	answerMaxChars int
}

func New(
	sessions *session.Store,
	resolver *scope.Resolver,
	gate *access.Gate,
	directory *memory.DirectoryCache,
	answerCache *memory.AnswerCache,
	engine qa.Engine,
	summarizer qa.Summarizer,
	deliveryMgr *delivery.Manager,
	transcripts contract.TranscriptRepository,
	casePub CasePublisher,
	eventPub EventPublisher,
	log logger.ILogger,
	qaTimeout time.Duration,
	answerMaxChars int,
) *Orchestrator {
	return &Orchestrator{
		sessions:       sessions,
		resolver:       resolver,
		gate:           gate,
		directory:      directory,
		answerCache:    answerCache,
		engine:         engine,
		summarizer:     summarizer,
		delivery:       deliveryMgr,
		transcripts:    transcripts,
		casePub:        casePub,
		eventPub:       eventPub,
		logger:         log,
		validate:       validator.New(),
		qaTimeout:      qaTimeout,
		answerMaxChars: answerMaxChars,
	}
}

// Handle processes one inbound event for an identity. The dispatcher
// guarantees per-identity arrival order; Handle itself may block on
// collaborators without affecting other identities.
func (o *Orchestrator) Handle(ctx context.Context, msg dto.IncomingMessage) {
	identity := msg.Identity

	if strings.TrimSpace(msg.Text) == "/start" {
		o.handleStart(ctx, identity)
		return
	}

	if msg.Callback != "" {
		o.handleResolutionChoice(ctx, identity, msg.Callback)
		return
	}

	// Every inbound message is activity: advance the clock and clear the
	// inactivity-prompt flag before anything else.
	_, existed := o.sessions.Get(identity)
	sess := o.sessions.Update(identity, func(s *store.Session) {
		s.LastActivity = time.Now()
		s.Prompted = false
	})
	if !existed {
		o.publishEvent(ctx, events.SessionStartedEvent{
			Identity:  identity,
			SessionId: sess.Id.String(),
			StartedAt: time.Now(),
		})
	}

	switch sess.Phase {
	case store.PhaseAwaitingEmail:
		o.handleEmail(ctx, sess, msg.Text)
	default:
		if IsClosingPhrase(msg.Text) {
			o.beginResolution(ctx, identity)
			return
		}
		o.handleQuery(ctx, sess, msg.Text)
	}
}

// handleStart resets any running session and greets. A new top-level start
// always destroys previous state.
func (o *Orchestrator) handleStart(ctx context.Context, identity string) {
	o.sessions.Reset(identity)
	sess := o.sessions.Update(identity, func(s *store.Session) {
		s.LastActivity = time.Now()
	})
	o.publishEvent(ctx, events.SessionStartedEvent{
		Identity:  identity,
		SessionId: sess.Id.String(),
		StartedAt: time.Now(),
	})
	o.delivery.Send(ctx, identity, GreetingText, nil)
}

// beginResolution moves a session into ResolutionPending and asks the binary
// question. No QA call is made for a closing phrase.
func (o *Orchestrator) beginResolution(ctx context.Context, identity string) {
	o.sessions.Update(identity, func(s *store.Session) {
		s.Phase = store.PhaseResolutionPending
	})
	o.delivery.Send(ctx, identity, ResolutionPromptText, resolutionButtons())
}

// PromptResolution is the inactivity monitor's entry point. The monitor has
// already claimed the Prompted flag under the session lock.
func (o *Orchestrator) PromptResolution(ctx context.Context, identity string) {
	o.delivery.Send(ctx, identity, IdlePromptText, resolutionButtons())
}

// handleQuery is the normal answer path: scope, gate, cache, QA, deliver.
func (o *Orchestrator) handleQuery(ctx context.Context, sess store.Session, text string) {
	identity := sess.Identity

	// Registration and subscription are re-checked on every query-bearing
	// message; a lapse mid-session must close the gate.
	grant, err := o.gate.Check(ctx, identity, "")
	if err != nil {
		o.replyDenied(ctx, identity, err)
		return
	}

	directory, err := o.directory.Snapshot(ctx, grant.BusinessId)
	if err != nil {
		o.logger.Error("ORCHESTRATOR", "Directory refresh failed", map[string]interface{}{
			"identity": identity, "error": err.Error(),
		})
		directory = map[string]string{}
	}

	resolution, err := o.resolver.Resolve(directory, sess.ActiveScope, text)
	if err != nil {
		var needsScope *dto.NeedsScopeError
		if errors.As(err, &needsScope) {
			o.sessions.Update(identity, func(s *store.Session) {
				if s.Phase == store.PhaseIdle {
					s.Phase = store.PhaseAwaitingScopeSelection
				}
			})
			o.delivery.Send(ctx, identity, needsScope.Prompt(), nil)
			return
		}
		o.delivery.Send(ctx, identity, ApologyText, nil)
		return
	}

	if _, err := o.gate.Check(ctx, identity, resolution.Scope); err != nil {
		o.replyDenied(ctx, identity, err)
		return
	}

	// Sticky-scope update happens only for a newly tagged or matched scope,
	// never on mere reuse.
	if resolution.Source != scope.SourceSticky && resolution.Scope != sess.ActiveScope {
		if sess.ActiveScope != "" {
			o.answerCache.InvalidateScope(identity, sess.ActiveScope)
		}
		o.sessions.Update(identity, func(s *store.Session) {
			s.ActiveScope = resolution.Scope
		})
	}

	// A scope mention with nothing left to ask is a scope selection, not a
	// query.
	if strings.TrimSpace(resolution.Query) == "" {
		o.sessions.Update(identity, func(s *store.Session) {
			s.Phase = store.PhaseQuerying
		})
		o.delivery.Send(ctx, identity, scopeConfirmedText(resolution.Scope), nil)
		return
	}

	answer, resolved, cacheHit := o.produceAnswer(ctx, identity, resolution.Scope, resolution.Query)
	if answer == "" {
		// Collaborator failure: apologize, leave the phase alone so the user
		// can retry the same turn.
		o.delivery.Send(ctx, identity, ApologyText, nil)
		return
	}

	o.delivery.Send(ctx, identity, answer, nil)

	updated := o.sessions.Update(identity, func(s *store.Session) {
		s.Phase = store.PhaseQuerying
		s.LastQuery = resolution.Query
		s.LastAnswer = answer
	})

	if err := o.transcripts.AppendTurn(ctx, &entity.QueryLog{
		ChatId:           identity,
		Query:            resolution.Query,
		Response:         answer,
		ResolutionStatus: entity.ResolutionPendingStatus,
		SessionId:        updated.Id,
		Timestamp:        time.Now().UTC(),
	}); err != nil {
		o.logger.Error("ORCHESTRATOR", "Failed to log transcript turn", map[string]interface{}{
			"identity": identity, "session_id": updated.Id.String(), "error": err.Error(),
		})
	}

	// Forward-looking shortcut: when the collaborator itself judges the turn
	// resolved, offer the closing prompt right away. Cache hits stay neutral.
	if !cacheHit && resolved {
		o.beginResolution(ctx, identity)
	}
}

// produceAnswer consults the cache, then the QA collaborator under a timeout.
// Returns ("", false, false) on collaborator failure.
func (o *Orchestrator) produceAnswer(ctx context.Context, identity, scopeId, question string) (answer string, resolved, cacheHit bool) {
	if cached, ok := o.answerCache.Get(identity, scopeId, question); ok {
		o.logger.Debug("ORCHESTRATOR", "Answer cache hit", map[string]interface{}{
			"identity": identity, "scope": scopeId,
		})
		return cached, false, true
	}

	qaCtx, cancel := context.WithTimeout(ctx, o.qaTimeout)
	defer cancel()

	result, err := o.engine.AnswerQuery(qaCtx, question, identity, scopeId)
	if err != nil {
		o.logger.Error("ORCHESTRATOR", "QA collaborator failed", map[string]interface{}{
			"identity": identity, "scope": scopeId, "error": err.Error(),
		})
		return "", false, false
	}

	cleaned := CleanAnswer(result.Answer, o.answerMaxChars)
	if cleaned == "" {
		return "", false, false
	}

	o.answerCache.Put(identity, scopeId, question, cleaned)
	return cleaned, result.Resolved != nil && *result.Resolved, false
}

// handleResolutionChoice reacts to the Resolved/Unresolved button. Only valid
// while the session waits for exactly that decision.
func (o *Orchestrator) handleResolutionChoice(ctx context.Context, identity, choice string) {
	sess, ok := o.sessions.Get(identity)
	if !ok || sess.Phase != store.PhaseResolutionPending {
		o.logger.Debug("ORCHESTRATOR", "Ignoring stray resolution callback", map[string]interface{}{
			"identity": identity, "choice": choice,
		})
		return
	}
	if choice != CallbackResolved && choice != CallbackUnresolved {
		o.delivery.Send(ctx, identity, ResolutionPromptText, resolutionButtons())
		return
	}

	unresolved := choice == CallbackUnresolved

	logText := ""
	turns, err := o.transcripts.FindBySessionId(ctx, sess.Id)
	if err != nil {
		o.logger.Error("ORCHESTRATOR", "Failed to fetch transcript", map[string]interface{}{
			"identity": identity, "session_id": sess.Id.String(), "error": err.Error(),
		})
	} else {
		logText = RenderLogText(turns)
	}
	summary := o.summarizer.Summarize(ctx, logText)

	o.sessions.Update(identity, func(s *store.Session) {
		s.Phase = store.PhaseAwaitingEmail
		s.Unresolved = unresolved
		s.Summary = summary
		s.LastActivity = time.Now()
		s.Prompted = false
	})

	o.delivery.Send(ctx, identity, AskEmailText, nil)
}

// handleEmail finishes the closing sub-flow. An invalid address re-prompts
// without a phase change; a valid one records the case, queues the
// confirmation email and ends the session even if delivery fails.
func (o *Orchestrator) handleEmail(ctx context.Context, sess store.Session, text string) {
	identity := sess.Identity
	email := strings.TrimSpace(text)

	if err := o.validate.Var(email, "required,email"); err != nil {
		o.delivery.Send(ctx, identity, InvalidEmailText, nil)
		return
	}

	status := entity.ResolutionResolved
	if sess.Unresolved {
		status = entity.ResolutionUnresolved
	}
	summary := sess.Summary
	if err := o.transcripts.MarkResolution(ctx, sess.Id, status, &summary); err != nil {
		o.logger.Error("ORCHESTRATOR", "Failed to mark resolution", map[string]interface{}{
			"identity": identity, "session_id": sess.Id.String(), "error": err.Error(),
		})
	}

	if err := o.casePub.PublishCaseClosed(ctx, &dto.CaseClosedMessage{
		Identity:   identity,
		SessionId:  sess.Id.String(),
		Email:      email,
		Unresolved: sess.Unresolved,
		Summary:    summary,
	}); err != nil {
		o.logger.Error("ORCHESTRATOR", "Failed to publish case closure", map[string]interface{}{
			"identity": identity, "session_id": sess.Id.String(), "error": err.Error(),
		})
	}

	o.delivery.Send(ctx, identity, caseClosedText(email), nil)

	// Ended: the session record is destroyed; the next message starts fresh.
	o.sessions.Reset(identity)
}

func (o *Orchestrator) replyDenied(ctx context.Context, identity string, err error) {
	var denied *dto.AccessDeniedError
	if errors.As(err, &denied) {
		o.delivery.Send(ctx, identity, denied.Reason, nil)
		return
	}
	o.delivery.Send(ctx, identity, access.ReasonServiceUnavailable, nil)
}

func (o *Orchestrator) publishEvent(ctx context.Context, event events.Event) {
	if o.eventPub == nil {
		return
	}
	if err := o.eventPub.Publish(ctx, event); err != nil {
		o.logger.Warn("ORCHESTRATOR", "Event publish failed", map[string]interface{}{
			"event": event.EventType(), "error": err.Error(),
		})
	}
}

// RenderLogText flattens transcript turns into the plain-text log used for
// summarization and the closing email.
func RenderLogText(turns []*entity.QueryLog) string {
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "User: %s\nBot: %s\n", t.Query, t.Response)
	}
	return strings.TrimSpace(b.String())
}
