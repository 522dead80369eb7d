// Package cartstore persists session carts in a local LevelDB so a
// cart survives navigation and process restarts within a session.
// It is scoped storage, not shared state: one value per session key,
// last write wins.
package cartstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

var _ port.CartStore = (*Store)(nil)

type Store struct {
	db *leveldb.DB
}

func Open(path string) (*Store, error) {
	const op = "cartstore.Open"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db}, nil
}

func (s *Store) Close() {
	const op = "Store.Close"
	log := slog.With("op", op)

	log.Info("closing cart store...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("cart store is closed")
}

func (s *Store) LoadCart(sessionID string) ([]domain.CartLine, error) {
	const op = "Store.LoadCart"

	data, err := s.db.Get(cartKey(sessionID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return []domain.CartLine{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lines, nil
}

func (s *Store) SaveCart(sessionID string, lines []domain.CartLine) error {
	const op = "Store.SaveCart"

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Put(cartKey(sessionID), data, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) DeleteCart(sessionID string) error {
	const op = "Store.DeleteCart"

	if err := s.db.Delete(cartKey(sessionID), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func cartKey(sessionID string) []byte {
	return []byte("cart:" + sessionID)
}
