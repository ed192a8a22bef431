package polling

import (
	"context"
	"time"
)

// CountSource entrega el total actual de registros de un tenant. Lo implementa
// quien tenga algo que contar (citas pendientes, medicamentos en caché).
type CountSource interface {
	Count(ctx context.Context, hospitalID string) (int, error)
}

// State estado de sondeo entre llamadas. Lo posee el caller y se pasa en cada
// Poll: no hay ninguna variable a nivel de proceso.
type State struct {
	LastCount  int
	LastPolled time.Time
}

// Detector detecta llegadas nuevas comparando el conteo actual contra el del
// sondeo anterior.
type Detector struct {
	src CountSource
}

// NewDetector construye el detector sobre la fuente de conteo dada.
func NewDetector(src CountSource) *Detector {
	return &Detector{src: src}
}

// Poll devuelve cuántos registros llegaron desde el sondeo anterior y el
// estado a usar en la siguiente llamada. Un conteo menor (hubo borrados) no
// cuenta como llegada: devuelve 0 y reancla el estado.
func (d *Detector) Poll(ctx context.Context, hospitalID string, st State) (int, State, error) {
	count, err := d.src.Count(ctx, hospitalID)
	if err != nil {
		return 0, st, err
	}
	next := State{LastCount: count, LastPolled: time.Now()}

	arrivals := count - st.LastCount
	if st.LastPolled.IsZero() || arrivals < 0 {
		// Primer sondeo o hubo borrados: nada que anunciar.
		return 0, next, nil
	}
	return arrivals, next, nil
}
