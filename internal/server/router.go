package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const roomPattern = "{id:[a-zA-Z0-9\\-]+}"

func NewRouter(rooms *Rooms, snapshotInterval time.Duration) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/rooms", listRooms(rooms)).Methods("GET")
	router.HandleFunc("/rooms/"+roomPattern, getRoom(rooms)).Methods("GET")
	router.HandleFunc("/rooms/"+roomPattern+"/scores", resetScores(rooms)).Methods("DELETE")
	router.HandleFunc("/rooms/"+roomPattern+"/ws", HandleWebSocket(rooms, snapshotInterval)).Methods("GET")
	return router
}

// Handler wraps the router with an access log written to logger.
func Handler(rooms *Rooms, snapshotInterval time.Duration, logger io.Writer) http.Handler {
	return handlers.CombinedLoggingHandler(logger, NewRouter(rooms, snapshotInterval))
}

func listRooms(rooms *Rooms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"rooms": rooms.IDs(),
		})
	}
}

func getRoom(rooms *Rooms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := rooms.Summary(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Room not found", http.StatusNotFound)
			return
		}
		writeJSON(w, summary)
	}
}

func resetScores(rooms *Rooms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rooms.ResetScores(mux.Vars(r)["id"]); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Error encoding response: %v", err)
	}
}
