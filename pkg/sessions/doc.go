// Package sessions tracks completed chat exchanges.
//
// # Overview
//
// The sessions package persists one row per chat request (endpoint,
// model, word counts, success flag) and reports the running count to the
// status surface. Two backends are provided:
//
//   - Memory: in-process storage (default, count resets on restart)
//   - SQLite: file-based persistence, count survives restarts
//
// # Usage
//
//	store, err := sessions.NewStore(&cfg.Sessions)
//	if err != nil {
//		return err
//	}
//	tracker := sessions.NewTracker(store, logger)
//	defer tracker.Close()
//
//	tracker.Track(ctx, &sessions.Session{
//	    Endpoint: "/api/chat",
//	    Model:    "phi",
//	    Success:  true,
//	})
//
// # Thread Safety
//
// All stores are thread-safe and support concurrent access from multiple
// goroutines. Locking is handled internally by each backend.
package sessions
