package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	"chorus/contexts/finance-core/royalty-ledger/ports"

	"github.com/google/uuid"
)

// balanceKey addresses one contributor's accrual on one song. A dedicated
// key struct avoids the collision risk of concatenating heterogeneous
// fields into a string key.
type balanceKey struct {
	songID  uint64
	account string
}

type royaltyKey struct {
	songID    uint64
	paymentID uint64
}

type outboxRecord struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
	PublishedAt  *time.Time
}

type Store struct {
	mu sync.RWMutex

	state         entities.LedgerState
	nextSongID    uint64
	songs         map[uint64]entities.Song
	royalties     map[royaltyKey]entities.RoyaltyRecord
	songBalances  map[balanceKey]int64
	totalBalances map[string]int64
	outbox        map[string]outboxRecord
}

// NewStore builds an active ledger owned by admin, optionally pre-seeded
// with songs. Seed ids are kept as given; new registrations continue after
// the highest seeded id.
func NewStore(admin string, seed []entities.Song) *Store {
	songs := make(map[uint64]entities.Song, len(seed))
	nextSongID := uint64(1)
	for _, song := range seed {
		songs[song.ID] = cloneSong(song)
		if song.ID >= nextSongID {
			nextSongID = song.ID + 1
		}
	}
	return &Store{
		state: entities.LedgerState{
			Admin: strings.TrimSpace(admin),
		},
		nextSongID:    nextSongID,
		songs:         songs,
		royalties:     make(map[royaltyKey]entities.RoyaltyRecord),
		songBalances:  make(map[balanceKey]int64),
		totalBalances: make(map[string]int64),
		outbox:        make(map[string]outboxRecord),
	}
}

func (s *Store) CreateSong(_ context.Context, song entities.Song) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song.ID = s.nextSongID
	s.nextSongID++
	s.songs[song.ID] = cloneSong(song)
	return song.ID, nil
}

func (s *Store) GetSong(_ context.Context, songID uint64) (entities.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	song, exists := s.songs[songID]
	if !exists {
		return entities.Song{}, domainerrors.ErrInvalidSong
	}
	return cloneSong(song), nil
}

func (s *Store) GetLedgerState(_ context.Context) (entities.LedgerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state, nil
}

func (s *Store) SetPaused(_ context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Paused = paused
	return nil
}

func (s *Store) SetAdmin(_ context.Context, admin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Admin = admin
	return nil
}

func (s *Store) ApplyDistribution(_ context.Context, distribution entities.Distribution) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.songs[distribution.SongID]; !exists {
		return 0, domainerrors.ErrInvalidSong
	}

	for _, share := range distribution.Shares {
		s.songBalances[balanceKey{songID: distribution.SongID, account: share.Account}] += share.Share
		s.totalBalances[share.Account] += share.Share
	}

	paymentID := s.state.PaymentCounter
	s.royalties[royaltyKey{songID: distribution.SongID, paymentID: paymentID}] = entities.RoyaltyRecord{
		SongID:      distribution.SongID,
		PaymentID:   paymentID,
		Amount:      distribution.Amount,
		Distributor: distribution.Distributor,
		OccurredAt:  distribution.OccurredAt,
	}
	s.state.PaymentCounter++
	return paymentID, nil
}

func (s *Store) GetRoyaltyRecord(_ context.Context, songID uint64, paymentID uint64) (entities.RoyaltyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.royalties[royaltyKey{songID: songID, paymentID: paymentID}]
	if !exists {
		return entities.RoyaltyRecord{}, domainerrors.ErrRoyaltyNotFound
	}
	return record, nil
}

func (s *Store) GetContributorBalance(_ context.Context, songID uint64, account string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.songBalances[balanceKey{songID: songID, account: strings.TrimSpace(account)}], nil
}

func (s *Store) GetTotalBalance(_ context.Context, account string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalBalances[strings.TrimSpace(account)], nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if _, exists := s.outbox[outboxID]; exists {
		return nil
	}
	s.outbox[outboxID] = outboxRecord{
		OutboxID:     outboxID,
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.EntityID),
		Payload:      payload,
		CreatedAt:    envelope.OccurredAtUTC.UTC(),
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows := make([]outboxRecord, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.PublishedAt == nil {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(outboxID)
	row, ok := s.outbox[id]
	if !ok {
		return domainerrors.ErrRoyaltyNotFound
	}
	timestamp := publishedAt.UTC()
	row.PublishedAt = &timestamp
	s.outbox[id] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneSong(song entities.Song) entities.Song {
	song.Contributors = append([]entities.Contributor(nil), song.Contributors...)
	return song
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.OutboxWriter = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
