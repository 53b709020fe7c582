package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the marketplace API. Reads on assets, auctions and bid
// snapshots are public; every mutating operation requires a bearer token.
func NewRouter(handler *Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(recoverMiddleware)
	router.Use(loggingMiddleware)

	router.Get("/healthz", handler.handleHealthz)
	router.Get("/readyz", handler.handleReadyz)

	router.Route("/marketplace/v1", func(r chi.Router) {
		r.Get("/assets/{asset_id}", handler.handleGetAsset)
		r.Get("/auctions/{auction_id}", handler.handleGetAuction)
		r.Get("/auctions/{auction_id}/bid", handler.handleGetBidSnapshot)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)

			r.Post("/assets", handler.handleMintAsset)
			r.Post("/assets/{asset_id}/transfer", handler.handleTransferAsset)
			r.Delete("/assets/{asset_id}", handler.handleBurnAsset)

			r.Post("/auctions", handler.handleCreateAuction)
			r.Post("/auctions/{auction_id}/bids", handler.handlePlaceBid)
			r.Post("/auctions/{auction_id}/end", handler.handleEndAuction)
			r.Post("/auctions/{auction_id}/claim", handler.handleClaimNFT)
		})
	})

	return router
}
