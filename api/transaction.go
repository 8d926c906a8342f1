package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/intectum/propellerhead/core/logger"
	"github.com/intectum/propellerhead/core/resource"
)

// Transaction wraps every request in a database transaction. The handler's
// reads and writes all run on it; the transaction commits when the handler
// succeeds and rolls back when it responds with an error status or panics.
// Handlers never commit themselves.
func Transaction(db *gorm.DB) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rlog := logger.FromContext(r.Context())

			// pool acquisition blocks on the request context, so a client
			// abort cancels the wait and rolls the transaction back
			tx := db.WithContext(r.Context()).Begin()
			if tx.Error != nil {
				rlog.Errorf("cannot begin transaction: %v", tx.Error)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := resource.NewContext(r.Context(), &resource.Context{Tx: tx})

			defer func() {
				if recovered := recover(); recovered != nil {
					tx.Rollback()
					rlog.Errorf("panic in handler: %v", recovered)
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(recorder, r.WithContext(ctx))

			if recorder.status >= http.StatusBadRequest {
				tx.Rollback()
				return
			}
			if err := tx.Commit().Error; err != nil {
				rlog.Errorf("cannot commit transaction: %v", err)
			}
		})
	}
}

// statusRecorder captures the response status so the transaction middleware
// can decide between commit and rollback after the handler ran.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
