package worker

import (
	"context"
	"log"
	"time"

	"github.com/nrampal/prospecta/internal/infra/http/middleware"
)

// SheetSyncer is satisfied by the sheets sync usecase.
type SheetSyncer interface {
	Execute(ctx context.Context, refreshToken string) error
}

// SheetsSyncWorker re-exports everything to Google Sheets on a fixed
// interval, acting as a dedicated service identity rather than borrowing a
// human user's credential.
type SheetsSyncWorker struct {
	syncer       SheetSyncer
	refreshToken string
	tickInterval time.Duration
}

func NewSheetsSyncWorker(syncer SheetSyncer, refreshToken string) *SheetsSyncWorker {
	return &SheetsSyncWorker{
		syncer:       syncer,
		refreshToken: refreshToken,
		tickInterval: 6 * time.Hour,
	}
}

func (w *SheetsSyncWorker) Start(ctx context.Context) {
	if w.refreshToken == "" {
		log.Println("⚠️ scheduled sheets sync disabled: GOOGLE_SYNC_REFRESH_TOKEN not set")
		return
	}

	log.Printf("🕒 sheets sync worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ sheets sync worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SheetsSyncWorker) runOnce(ctx context.Context) {
	log.Println("🔄 starting scheduled sheets sync")
	if err := w.syncer.Execute(ctx, w.refreshToken); err != nil {
		// Failures are logged only; the next tick tries again from scratch.
		log.Printf("❌ scheduled sheets sync failed: %v", err)
		middleware.RecordSheetSync("scheduled", "error")
		return
	}
	middleware.RecordSheetSync("scheduled", "success")
	log.Println("✅ scheduled sheets sync completed")
}
