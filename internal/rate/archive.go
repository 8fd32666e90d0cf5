package rate

import (
	"context"
	"time"

	"cryptoquote/internal/adapters"
	"cryptoquote/internal/domain"

	"github.com/sirupsen/logrus"
)

type SnapshotSource interface {
	Subscribe() (<-chan domain.Snapshot, func())
}

// ArchiveSnapshots writes every newly committed table to recorder until ctx is done.
// Failed refreshes and repeats of an already archived table are skipped.
func ArchiveSnapshots(ctx context.Context, source SnapshotSource, recorder adapters.SnapshotRecorder, fiat string) {
	updates, unsubscribe := source.Subscribe()
	defer unsubscribe()

	var archived time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if snap.Status.LastError != nil || !snap.Status.HasSucceeded() || !snap.Status.LastSuccess.After(archived) {
				continue
			}
			if err := recorder.Record(ctx, fiat, snap.Status.LastSuccess, snap.Table); err != nil {
				logrus.WithError(err).WithField("fiat", fiat).Warn("Failed to archive rate snapshot")
				continue
			}
			archived = snap.Status.LastSuccess
		}
	}
}
