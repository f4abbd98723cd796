package withdrawmanager

import (
	"context"
	"errors"
	"time"

	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
)

// Default inter-request delays per exchange
const (
	DefaultMEXCDelay   = time.Second
	DefaultCoinExDelay = 1500 * time.Millisecond
)

var (
	// ErrNilClient is returned when no exchange client is supplied
	ErrNilClient = errors.New("exchange client is nil")
	// ErrNegativeDelay is returned when the inter-request delay is negative
	ErrNegativeDelay = errors.New("delay cannot be negative")
)

// ResultHandler receives each result as soon as its withdrawal completes
type ResultHandler func(index int, r withdraw.Result)

// Sleeper blocks for the duration or until the context is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a Manager
type Option func(*Manager)

// Manager submits withdrawal batches strictly sequentially with a fixed
// delay between consecutive submissions
type Manager struct {
	client   exchange.Client
	delay    time.Duration
	sleep    Sleeper
	now      func() time.Time
	onResult ResultHandler
}
