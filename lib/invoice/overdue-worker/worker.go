package overdueworker

import (
	"context"
	"time"

	invoicehandler "pmfin-backend/lib/invoice"
	baseworker "pmfin-backend/lib/utils/base-worker"
)

type Marker interface {
	MarkOverdue(ctx context.Context, now time.Time) (count int, err error)
}

func StartWorker(ctx context.Context, interval time.Duration) {
	i := newWorker(invoicehandler.Instance, interval)
	go i.Run(ctx, i.handle)
}

func newWorker(marker Marker, interval time.Duration) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("InvoiceOverdueWorker", 15*time.Second, interval),
		marker:   marker,
		now:      time.Now,
	}
}

type impl struct {
	baseworker.BaseImpl
	marker Marker
	now    func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	count, err := i.marker.MarkOverdue(ctx, i.now())
	if err != nil {
		logger.WithError(err).Error("failed to mark overdue invoices")
	}
	if count > 0 {
		logger.WithField("count", count).Info("invoices marked overdue")
	}
}
