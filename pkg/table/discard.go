package table

// DiscardSink drops all output. It lets the decoder run for its side
// effects (metadata, counters, validation) without rendering a table.
type DiscardSink struct{}

func (DiscardSink) Preamble(Meta) error        { return nil }
func (DiscardSink) HeaderRow([]string) error   { return nil }
func (DiscardSink) Row(int64, []float64) error { return nil }
func (DiscardSink) Close() error               { return nil }
