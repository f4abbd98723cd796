package withdrawmanager

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
)

// New returns a Manager submitting through client with delay between
// consecutive withdrawals
func New(client exchange.Client, delay time.Duration, opts ...Option) (*Manager, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if delay < 0 {
		return nil, ErrNegativeDelay
	}
	m := &Manager{
		client: client,
		delay:  delay,
		sleep:  sleepContext,
		now:    time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// WithSleeper overrides how the manager waits between withdrawals
func WithSleeper(s Sleeper) Option {
	return func(m *Manager) {
		if s != nil {
			m.sleep = s
		}
	}
}

// WithClock overrides the clock used for default remarks
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithResultHandler registers a progress hook called after every item
func WithResultHandler(h ResultHandler) Option {
	return func(m *Manager) {
		m.onResult = h
	}
}

// DefaultDelay returns the default inter-request delay for an exchange
func DefaultDelay(exchangeName string) time.Duration {
	if strings.EqualFold(exchangeName, exchange.CoinEx) {
		return DefaultCoinExDelay
	}
	return DefaultMEXCDelay
}

// Delay returns the configured inter-request delay
func (m *Manager) Delay() time.Duration {
	return m.delay
}

// ExecuteBulk submits every request in order and returns exactly one result
// per request in input order. A failed item never stops the batch. Once the
// context is done the remaining items are reported as failed without being
// submitted. A submission already in flight is not cancelled so its result
// reflects what the exchange answered.
func (m *Manager) ExecuteBulk(ctx context.Context, creds *account.Credentials, reqs []withdraw.Request) []withdraw.Result {
	results := make([]withdraw.Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	batchID, err := uuid.NewV4()
	if err != nil {
		log.Warnf(log.WithdrawMgr, "unable to generate batch id: %v", err)
	}
	name := m.client.GetName()
	log.Infof(log.WithdrawMgr, "%s batch %s started, %d withdrawals, %s delay", name, batchID, len(reqs), m.delay)

	for i := range reqs {
		if err := ctx.Err(); err != nil {
			results[i] = withdraw.NewResult(&reqs[i]).Failed(err.Error())
		} else {
			req := reqs[i]
			if strings.TrimSpace(req.Remark) == "" {
				req.Remark = withdraw.DefaultRemark(m.now())
			}
			results[i] = m.client.SubmitWithdrawal(context.WithoutCancel(ctx), creds, &req)
			log.WithFields(log.WithdrawMgr, map[string]interface{}{
				"batch":   batchID.String(),
				"index":   i,
				"coin":    req.Coin,
				"address": req.Address,
				"amount":  req.Amount,
				"success": results[i].Success,
			}).Debug("withdrawal processed")
		}
		if m.onResult != nil {
			m.onResult(i, results[i])
		}
		if i < len(reqs)-1 && ctx.Err() == nil {
			if err := m.sleep(ctx, m.delay); err != nil {
				log.Warnf(log.WithdrawMgr, "%s batch %s interrupted after %d of %d withdrawals: %v", name, batchID, i+1, len(reqs), err)
			}
		}
	}

	succeeded, failed := withdraw.Summarise(results)
	log.Infof(log.WithdrawMgr, "%s batch %s finished, %d succeeded, %d failed", name, batchID, succeeded, failed)
	return results
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
