package http

type ErrorResponse struct {
	Code      string `json:"code"`
	ErrorCode int    `json:"error_code,omitempty"`
	Message   string `json:"message"`
}

type ContributorDTO struct {
	Account    string `json:"account"`
	Percentage int    `json:"percentage"`
}

type RegisterSongRequest struct {
	Title        string           `json:"title"`
	IPFSHash     string           `json:"ipfs_hash"`
	Contributors []ContributorDTO `json:"contributors"`
}

type SongDTO struct {
	ID           uint64           `json:"id"`
	Title        string           `json:"title"`
	Artist       string           `json:"artist"`
	IPFSHash     string           `json:"ipfs_hash"`
	Contributors []ContributorDTO `json:"contributors"`
	CreatedAt    string           `json:"created_at"`
}

type DistributeRequest struct {
	Amount int64 `json:"amount"`
}

type DistributeResponse struct {
	SongID    uint64 `json:"song_id"`
	PaymentID uint64 `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

type RoyaltyRecordDTO struct {
	SongID      uint64 `json:"song_id"`
	PaymentID   uint64 `json:"payment_id"`
	Amount      int64  `json:"amount"`
	Distributor string `json:"distributor"`
	OccurredAt  string `json:"occurred_at"`
}

// RoyaltyHistoryResponse carries a null record when no payment exists for
// the requested (song, payment) pair.
type RoyaltyHistoryResponse struct {
	Record *RoyaltyRecordDTO `json:"record"`
}

type BalanceResponse struct {
	SongID  uint64 `json:"song_id,omitempty"`
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

type LedgerStatusResponse struct {
	Admin          string `json:"admin"`
	Paused         bool   `json:"paused"`
	PaymentCounter uint64 `json:"payment_counter"`
}

type SetAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

type PauseResponse struct {
	Paused bool `json:"paused"`
}
