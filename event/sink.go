package event

// Sink consumes events synchronously. The contract emits only after its
// state transaction has committed, so a sink never observes uncommitted
// balances.
type Sink interface {
	Emit(e Event)
}

type MultiSink []Sink

func (m MultiSink) Emit(e Event) {
	for _, sink := range m {
		sink.Emit(e)
	}
}
