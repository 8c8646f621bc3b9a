package blockchain

import (
	"context"

	"cafeshift/backend/internal/repository/postgres/blockchain"
)

type Blockchain interface {
	Store(ctx context.Context, request blockchain.StoreRequest) (blockchain.StoreResponse, error)
	StoreBatch(ctx context.Context, request blockchain.BatchStoreRequest) (blockchain.BatchStoreResponse, error)
	Verify(ctx context.Context, request blockchain.VerifyRequest) (blockchain.VerifyResponse, error)
	GetRecord(ctx context.Context, transactionHash string) (blockchain.RecordResponse, error)
}
