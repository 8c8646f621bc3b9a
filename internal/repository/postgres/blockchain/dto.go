package blockchain

import (
	"cafeshift/backend/internal/service/ledger"
)

type StoreRequest struct {
	PayrollEntryID string `json:"payrollEntryId" form:"payrollEntryId"`
}

type BatchStoreRequest struct {
	PayrollEntryIDs []string `json:"payrollEntryIds" form:"payrollEntryIds"`
}

type VerifyRequest struct {
	PayrollEntryID string `json:"payrollEntryId" form:"payrollEntryId"`
}

type StoreResponse struct {
	Message          string         `json:"message"`
	BlockchainRecord ledger.Receipt `json:"blockchainRecord"`
}

type BatchStoreResponse struct {
	Message     string           `json:"message"`
	StoredCount int              `json:"storedCount"`
	Results     []ledger.Receipt `json:"results"`
}

type VerifyResponse struct {
	Message      string              `json:"message"`
	Verification ledger.Verification `json:"verification"`
}

// RecordResponse is a stored entry looked up by its transaction hash.
type RecordResponse struct {
	TransactionHash string        `json:"transactionHash"`
	BlockNumber     int64         `json:"blockNumber"`
	BlockchainHash  string        `json:"blockchainHash"`
	Verified        bool          `json:"verified"`
	Record          ledger.Record `json:"record"`
}
