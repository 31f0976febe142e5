package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type LinkageCounter interface {
	CountAwaitingLinkage(ctx context.Context) (int, error)
}

// LinkageStatsWorker publica de tempos em tempos quantos leads ainda não têm
// nem contato no CRM nem cliente no pagamento.
type LinkageStatsWorker struct {
	repo      LinkageCounter
	record    func(int)
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewLinkageStatsWorker(repo LinkageCounter, interval time.Duration, record func(int)) (*LinkageStatsWorker, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	w := &LinkageStatsWorker{
		repo:      repo,
		record:    record,
		interval:  interval,
		scheduler: scheduler,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.refresh, context.Background()),
		gocron.WithName("leads-awaiting-linkage"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create linkage stats job: %w", err)
	}

	return w, nil
}

func (w *LinkageStatsWorker) Start() {
	log.Printf("🕒 Linkage Stats Worker iniciado (a cada %s)", w.interval)
	w.scheduler.Start()
}

func (w *LinkageStatsWorker) Stop() error {
	log.Println("⚠️ Linkage Stats Worker encerrado")
	return w.scheduler.Shutdown()
}

func (w *LinkageStatsWorker) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := w.repo.CountAwaitingLinkage(ctx)
	if err != nil {
		log.Printf("❌ Erro ao contar leads sem vínculo: %v", err)
		return err
	}

	w.record(count)
	if count > 0 {
		log.Printf("⏱️ %d lead(s) aguardando vínculo com CRM/pagamento", count)
	}
	return nil
}
