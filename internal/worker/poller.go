package worker

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/config"
	"github.com/park-seva/helpcenter-service/internal/service"
)

// Poller owns the two periodic help-center sweeps: the response-notification
// poll and the escalation sweep. Both schedules share one cron runner so they
// start and stop together with the conversation surface.
type Poller struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewPoller registers both schedules from config.
func NewPoller(conversation *service.ConversationService, cfg config.HelpCenterConfig, logger *zap.Logger) (*Poller, error) {
	runner := cron.New(cron.WithSeconds())

	if _, err := runner.AddFunc(cfg.ResponsePollSpec, func() {
		if err := conversation.PollResponses(context.Background()); err != nil {
			logger.Warn("response poll failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	if _, err := runner.AddFunc(cfg.EscalationPollSpec, func() {
		if err := conversation.PollEscalations(context.Background()); err != nil {
			logger.Warn("escalation sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	return &Poller{cron: runner, logger: logger}, nil
}

// Start launches both schedules.
func (p *Poller) Start() {
	p.cron.Start()
	p.logger.Info("help-center pollers started")
}

// Stop cancels both schedules and waits for in-flight runs to finish.
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info("help-center pollers stopped")
}
