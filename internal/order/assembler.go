// package order assembles the finished collection into a fulfillment request.
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/arf3lix/songorder/internal/grouping"
	"github.com/arf3lix/songorder/internal/models"
	"github.com/arf3lix/songorder/internal/shared"
	"github.com/charmbracelet/log"
)

// Creator is the order-creation call the assembler depends on. Implemented
// by [services.OrderService].
type Creator interface {
	CreateOrder(ctx context.Context, order models.OrderRequest) (*models.OrderConfirmation, error)
}

// Recorder persists confirmation receipts. Implemented by
// [repositories.ReceiptRepository]; optional.
type Recorder interface {
	Create(receipt *models.Receipt) error
}

// Assembler serializes the current grouping state plus delivery metadata into
// one order-creation request and interprets the result.
//
// On success the grouping engine is reset; on any failure the collection is
// left untouched so the user can retry.
type Assembler struct {
	engine   *grouping.Engine
	orders   Creator
	receipts Recorder
	prefix   string // reserved phone prefix that unlocks physical delivery
	logger   *log.Logger
}

// NewAssembler creates an assembler over engine. receipts may be nil, in
// which case confirmations are not recorded locally.
func NewAssembler(engine *grouping.Engine, orders Creator, receipts Recorder, reservedPrefix string, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Assembler{
		engine:   engine,
		orders:   orders,
		receipts: receipts,
		prefix:   reservedPrefix,
		logger:   logger,
	}
}

// DeliveryOptions returns the delivery types available to the given phone
// number. Numbers on the reserved prefix choose between a digital link and
// physical media; everyone else is fulfilled by digital link without being
// asked.
func (a *Assembler) DeliveryOptions(phone string) []models.DeliveryType {
	if a.prefix != "" && strings.HasPrefix(phone, a.prefix) {
		return []models.DeliveryType{models.DeliveryDigitalLink, models.DeliveryPhysicalUSB}
	}
	return []models.DeliveryType{models.DeliveryDigitalLink}
}

// Submit snapshots the collection, POSTs it with the delivery metadata, and
// on success resets the collection and returns the confirmation receipt.
func (a *Assembler) Submit(ctx context.Context, delivery models.DeliveryType, phone string) (*models.OrderConfirmation, error) {
	if !delivery.Valid() {
		return nil, fmt.Errorf("%w: delivery type %q", shared.ErrInvalidArgument, delivery)
	}
	if !a.allowed(delivery, phone) {
		return nil, fmt.Errorf("%w: %s delivery is not available for this number", shared.ErrInvalidArgument, delivery)
	}

	snapshot := a.engine.Snapshot()
	if len(snapshot) == 0 {
		return nil, shared.ErrEmptyOrder
	}

	confirmation, err := a.orders.CreateOrder(ctx, models.OrderRequest{
		PhoneNumber:  phone,
		DeliveryType: delivery,
		SongGroups:   snapshot,
	})
	if err != nil {
		return nil, err
	}

	a.engine.Reset()
	a.record(confirmation, phone, delivery)

	return confirmation, nil
}

func (a *Assembler) allowed(delivery models.DeliveryType, phone string) bool {
	for _, d := range a.DeliveryOptions(phone) {
		if d == delivery {
			return true
		}
	}
	return false
}

// record stores the confirmation in the local receipt history. Failures are
// logged, not surfaced: the order already succeeded on the backend.
func (a *Assembler) record(conf *models.OrderConfirmation, phone string, delivery models.DeliveryType) {
	if a.receipts == nil {
		return
	}
	if err := a.receipts.Create(models.NewReceipt(*conf, phone, delivery)); err != nil {
		a.logger.Warn("failed to record receipt", "order", conf.TempID, "err", err)
	}
}
