package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// events streams store snapshots as server-sent events. Each mounted store
// sends its current snapshot on connect and again after every change.
//
//	event: patient
//	data: {...}
func (s *Server) events(c echo.Context) error {
	if s.deps.Patient == nil && s.deps.Admin == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No stores are being served")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	// nil channels block forever, which disables the matching select case
	var patientCh, adminCh <-chan struct{}
	if s.deps.Patient != nil {
		ch, cancel := s.deps.Patient.Subscribe()
		defer cancel()
		patientCh = ch
		if err := writeEvent(res, "patient", s.deps.Patient.Snapshot()); err != nil {
			return nil
		}
	}
	if s.deps.Admin != nil {
		ch, cancel := s.deps.Admin.Subscribe()
		defer cancel()
		adminCh = ch
		if err := writeEvent(res, "admin", s.deps.Admin.Snapshot()); err != nil {
			return nil
		}
	}

	ping := time.NewTicker(s.opts.KeepAlive)
	defer ping.Stop()

	ctx := c.Request().Context()
	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case <-patientCh:
			err = writeEvent(res, "patient", s.deps.Patient.Snapshot())
		case <-adminCh:
			err = writeEvent(res, "admin", s.deps.Admin.Snapshot())
		case <-ping.C:
			_, err = fmt.Fprint(res, ": ping\n\n")
			res.Flush()
		}
		if err != nil {
			s.logger.Debug().Err(err).Msg("event stream closed")
			return nil
		}
	}
}

func writeEvent(res *echo.Response, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
