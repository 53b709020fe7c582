package application

import (
	"time"

	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/escrow"
	"github.com/viralforge/mesh/services/financial-rails/M23-nft-auction-service/internal/ports"
)

type Config struct {
	ServiceName string
}

// Service owns the asset registry and the auction engine use-cases.
// Operations on one auction are serialized through per-auction mutexes;
// operations on distinct auctions and assets proceed in parallel.
type Service struct {
	cfg Config

	assets   ports.AssetRepository
	auctions ports.AuctionRepository
	escrow   *escrow.Ledger
	clock    ports.Clock
	bidCache ports.BidCache
	tokens   ports.TokenSigner

	auctionLocks keyedMutexes
	assetLocks   keyedMutexes

	nowFn func() time.Time
}

type Dependencies struct {
	Config   Config
	Assets   ports.AssetRepository
	Auctions ports.AuctionRepository
	Escrow   *escrow.Ledger
	Clock    ports.Clock
	BidCache ports.BidCache
	Tokens   ports.TokenSigner
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "M23-NFT-Auction-Service"
	}
	return &Service{
		cfg:      cfg,
		assets:   deps.Assets,
		auctions: deps.Auctions,
		escrow:   deps.Escrow,
		clock:    deps.Clock,
		bidCache: deps.BidCache,
		tokens:   deps.Tokens,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}
