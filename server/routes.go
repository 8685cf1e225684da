package server

import "net/http"

// routes sets up the routes for the API server.
func (s *Server) routes() {
	s.router.Use(s.requestID, s.logRequests)

	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.metricsHandler).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/status", s.status).Methods(http.MethodGet)
	v1.HandleFunc("/events", s.hub.ServeWS).Methods(http.MethodGet)
	v1.HandleFunc("/genesis", s.genesis).Methods(http.MethodGet)
	v1.HandleFunc("/params", s.params).Methods(http.MethodGet)
	v1.HandleFunc("/owner", s.owner).Methods(http.MethodGet)
	v1.HandleFunc("/treasury", s.treasury).Methods(http.MethodGet)
	v1.HandleFunc("/params/subscription-fee", s.subscriptionFee).Methods(http.MethodGet)
	v1.HandleFunc("/subscriptions/{address}", s.subscription).Methods(http.MethodGet)
	v1.HandleFunc("/oracles", s.oracles).Methods(http.MethodGet)
	v1.HandleFunc("/oracles/{id}", s.oracle).Methods(http.MethodGet)
	v1.HandleFunc("/oracles/{id}/data", s.latestData).Methods(http.MethodGet)
	v1.HandleFunc("/oracles/{id}/votes", s.voters).Methods(http.MethodGet)
	v1.HandleFunc("/oracles/{id}/votes/{voter}", s.hasVoted).Methods(http.MethodGet)

	tx := v1.NewRoute().Subrouter()
	tx.Use(s.requireCaller)
	tx.HandleFunc("/subscriptions", s.subscribe).Methods(http.MethodPost)
	tx.HandleFunc("/oracles", s.registerOracle).Methods(http.MethodPost)
	tx.HandleFunc("/oracles/{id}/data", s.submitData).Methods(http.MethodPost)
	tx.HandleFunc("/oracles/{id}/data/verify", s.verifyData).Methods(http.MethodPost)
	tx.HandleFunc("/oracles/{id}/votes", s.voteOracle).Methods(http.MethodPost)
	tx.HandleFunc("/params/subscription-fee", s.setSubscriptionFee).Methods(http.MethodPut)
}
