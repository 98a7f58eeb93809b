package middleware

import (
	"net/http"

	"github.com/mossii/statusboard/internal/api/apierr"
	"github.com/mossii/statusboard/internal/services/lock"
)

// EditLock rejects mutations while the board is locked. Reads are never
// gated; the lock endpoints themselves are mounted outside this middleware.
func EditLock(lockService *lock.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lockService.Locked() {
				apierr.WriteError(w, apierr.NewBoardLockedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
