package event

import "requestpay.com/payment-contract/log"

type logSink struct{}

func NewLogSink() Sink {
	return &logSink{}
}

func (s *logSink) Emit(e Event) {
	fields := map[string]interface{}{"event": e.Name()}
	for _, f := range e.Fields() {
		fields[f.Name] = f.Value
	}
	log.WithFields(fields).Info("contract event")
}
