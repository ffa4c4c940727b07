package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/platform/metrics"
	"vrp-route-viewer/internal/platform/obs"
	"vrp-route-viewer/internal/ports"
	"vrp-route-viewer/internal/render"
	"vrp-route-viewer/internal/session"
)

// Submitter runs one form submission end to end against a session.
type Submitter struct {
	Registry ports.LocationRegistry
	Solver   ports.Solver
}

// Outcome describes what a submission did to the session. When Stale is
// true a newer submission won and the session was left untouched; the
// snapshot then reflects the newer submission's view.
type Outcome struct {
	Generation uint64
	Stale      bool
	Snapshot   session.Snapshot
}

// Submit validates form, calls the solver when the form is valid and
// applies the result to sess if no newer submission has started.
//
// Validation failures never reach the network. Solver errors become a
// connection error notification; an empty route list becomes an info
// notification and clears the panel without touching the map.
func (s *Submitter) Submit(ctx context.Context, sess *session.Session, form domain.FormInput) (out Outcome, err error) {
	defer obs.Time(ctx, "submit")(&err)

	res := ValidateForm(form, s.Registry)
	if !res.OK {
		gen := sess.Reject(res.Notifications)
		record(domain.StateErrored, false)
		return Outcome{Generation: gen, Snapshot: sess.Snapshot()}, nil
	}

	gen := sess.Begin()

	resp, solveErr := s.Solver.Solve(ctx, res.Request)

	var result session.Result
	switch {
	case solveErr != nil:
		log.Printf("req_id=%s solve failed: gen=%d err=%v", obs.RequestID(ctx), gen, solveErr)
		result = session.Result{
			State:         domain.StateErrored,
			Notifications: []domain.Notification{domain.Error(titleConnectError, solveErr.Error())},
		}
	case len(resp.Routes) == 0:
		result = session.Result{
			State:         domain.StateRendered,
			Notifications: []domain.Notification{domain.Info(titleNoRoutes, msgNoRoutes)},
		}
	default:
		panel, err := render.RenderResults(resp.Routes)
		if err != nil {
			return Outcome{}, fmt.Errorf("submit: %w", err)
		}
		result = session.Result{
			State:  domain.StateRendered,
			Panel:  panel,
			Routes: resp.Routes,
		}
	}

	applied, err := sess.Finish(gen, result)
	if err != nil {
		return Outcome{}, fmt.Errorf("submit: finish generation %d: %w", gen, err)
	}
	if !applied {
		log.Printf("req_id=%s stale response discarded: gen=%d", obs.RequestID(ctx), gen)
	}
	record(result.State, !applied)

	return Outcome{Generation: gen, Stale: !applied, Snapshot: sess.Snapshot()}, nil
}

func record(state domain.ViewState, stale bool) {
	metrics.Submissions.WithLabelValues(string(state), strconv.FormatBool(stale)).Inc()
}
