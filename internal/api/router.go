package api

import (
	"net/http"

	"github.com/brainink/arena/internal/handler"
	"github.com/brainink/arena/internal/notify"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter wires every HTTP endpoint onto one router.
func SetupRouter(wh *handler.WalletHandler, th *handler.TournamentHandler, hub *notify.Hub) http.Handler {
	r := mux.NewRouter()

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Wallet endpoints
	r.HandleFunc("/wallet/generate", wh.Generate).Methods(http.MethodPost)
	r.HandleFunc("/wallet/connect", wh.Connect).Methods(http.MethodPost)
	r.HandleFunc("/wallet/disconnect", wh.Disconnect).Methods(http.MethodPost)
	r.HandleFunc("/wallet/balance", wh.GetBalance).Methods(http.MethodGet)
	r.HandleFunc("/wallet/transactions", wh.TransactionHistory).Methods(http.MethodGet)

	// Tournament endpoints
	r.HandleFunc("/tournaments", th.Create).Methods(http.MethodPost)
	r.HandleFunc("/tournaments", th.List).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/active", th.ActiveIDs).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/{id:[0-9]+}", th.Get).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/{id:[0-9]+}/join", th.Join).Methods(http.MethodPost)
	r.HandleFunc("/tournaments/{id:[0-9]+}/score", th.SubmitScore).Methods(http.MethodPost)
	r.HandleFunc("/tournaments/{id:[0-9]+}/participants/{address}", th.Participant).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/{id:[0-9]+}/membership/{address}", th.Membership).Methods(http.MethodGet)

	// Live event feed
	r.HandleFunc("/events", hub.ServeWS)

	return r
}
