// Package stats keeps lightweight transfer statistics fed from the contract
// event stream.
package stats

import (
	"sync"

	boom "github.com/tylertreat/BoomFilters"

	"requestpay.com/payment-contract/event"
	"requestpay.com/payment-contract/models"
)

// VolumeObserver is an event.Sink that tracks exact transfer totals and a
// count-min sketch of per-address activity. The sketch keeps memory constant
// no matter how many addresses the ledger accumulates; estimates may
// overcount, never undercount.
type VolumeObserver struct {
	mutex     sync.Mutex
	sketch    *boom.CountMinSketch
	transfers uint64
	volume    models.TokenAmount
}

func NewVolumeObserver() *VolumeObserver {
	return &VolumeObserver{
		sketch: boom.NewCountMinSketch(0.001, 0.99),
	}
}

func (o *VolumeObserver) Emit(e event.Event) {
	transfer, ok := e.(event.Transfer)
	if !ok {
		return
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.transfers++
	o.volume += transfer.Amount
	o.sketch.Add([]byte(transfer.From))
	o.sketch.Add([]byte(transfer.To))
}

func (o *VolumeObserver) Snapshot() *models.VolumeStatistics {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	return &models.VolumeStatistics{
		Transfers: o.transfers,
		Volume:    o.volume,
	}
}

// AddressActivity estimates how many transfers an address took part in.
func (o *VolumeObserver) AddressActivity(address string) uint64 {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	return o.sketch.Count([]byte(address))
}
