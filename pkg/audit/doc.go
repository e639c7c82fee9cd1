// Package audit keeps a usage trail of every chat request the gateway
// serves.
//
// Each Record carries the endpoint, resolved model, provider state at
// serving time, the request outcome and status, latency, and the bridge's
// word-count usage numbers. The Recorder enqueues records on the request
// path and writes them from a background worker; a full buffer drops the
// record and counts the drop rather than stalling a chat reply.
//
// Two Store backends exist: MemoryStore (the default, process-lifetime)
// and SQLiteStore (WAL mode, schema versioned). The Pruner enforces
// retention by age and by record cap, either on demand or on a cron
// schedule.
//
//	store, err := audit.NewStore(&cfg.Audit, logger)
//	if err != nil {
//		return err
//	}
//	recorder := audit.NewRecorder(store, cfg.Audit.Recorder, logger)
//	defer recorder.Close()
//
//	recorder.Record(&audit.Record{
//		Endpoint: "/api/chat",
//		Model:    "phi",
//		Outcome:  "success",
//	})
package audit
