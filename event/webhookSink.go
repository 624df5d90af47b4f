package event

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"

	"requestpay.com/payment-contract/common"
	"requestpay.com/payment-contract/log"
)

// webhookEnvelope is what an external indexer receives per event.
type webhookEnvelope struct {
	EventId string
	Event   string
	Fields  []Field
}

type webhookSink struct {
	url string
}

// NewWebhookSink posts each event to an external indexer endpoint. Delivery
// is best effort; a failed POST is logged, never propagated back into the
// invocation that produced the event.
func NewWebhookSink(url string) Sink {
	return &webhookSink{url: url}
}

func (s *webhookSink) Emit(e Event) {
	envelope := &webhookEnvelope{
		EventId: uuid.New().String(),
		Event:   e.Name(),
		Fields:  e.Fields(),
	}

	jsonValue, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("Error encoding event %s: %v", e.Name(), err)
		return
	}

	err = common.HttpPostWithoutResponse(s.url, bytes.NewBuffer(jsonValue))
	if err != nil {
		log.Warnf("Event webhook delivery failed for %s: %v", e.Name(), err)
	}
}
