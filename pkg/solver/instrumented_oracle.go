package solver

import (
	"context"
	"time"
)

// Query kinds reported by InstrumentedOracle.
const (
	QuerySatisfiable = "satisfiable"
	QueryBrave       = "brave"
	QueryCautious    = "cautious"
	QueryCount       = "count"
	QuerySolve       = "solve"
)

// InstrumentedOracle reports the duration of every query to one of
// two emitters depending on whether the query failed.
type InstrumentedOracle struct {
	Oracle
	successMetricsEmitter func(string, time.Duration)
	failureMetricsEmitter func(string, time.Duration)
}

var _ Oracle = &InstrumentedOracle{}

func NewInstrumentedOracle(oracle Oracle, successMetricsEmitter, failureMetricsEmitter func(string, time.Duration)) *InstrumentedOracle {
	return &InstrumentedOracle{
		Oracle:                oracle,
		successMetricsEmitter: successMetricsEmitter,
		failureMetricsEmitter: failureMetricsEmitter,
	}
}

func (o *InstrumentedOracle) emit(query string, start time.Time, err error) {
	if err != nil {
		o.failureMetricsEmitter(query, time.Since(start))
	} else {
		o.successMetricsEmitter(query, time.Since(start))
	}
}

func (o *InstrumentedOracle) Satisfiable(ctx context.Context, assumptions []Literal) (bool, error) {
	start := time.Now()
	ok, err := o.Oracle.Satisfiable(ctx, assumptions)
	o.emit(QuerySatisfiable, start, err)
	return ok, err
}

func (o *InstrumentedOracle) Consequences(ctx context.Context, mode EnumMode, assumptions []Literal) ([]Atom, error) {
	start := time.Now()
	as, err := o.Oracle.Consequences(ctx, mode, assumptions)
	query := QueryBrave
	if mode == Cautious {
		query = QueryCautious
	}
	o.emit(query, start, err)
	return as, err
}

func (o *InstrumentedOracle) Solve(ctx context.Context, assumptions []Literal) (Models, error) {
	start := time.Now()
	it, err := o.Oracle.Solve(ctx, assumptions)
	o.emit(QuerySolve, start, err)
	return it, err
}

func (o *InstrumentedOracle) Count(ctx context.Context, assumptions []Literal) (int, error) {
	start := time.Now()
	n, err := o.Oracle.Count(ctx, assumptions)
	o.emit(QueryCount, start, err)
	return n, err
}
