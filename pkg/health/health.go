// pkg/health/health.go
package health

import "net/http"

// Handler возвращает ответ "OK" для проверки работоспособности сервера.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
