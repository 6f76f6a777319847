package cart

import (
	"context"

	"go.uber.org/zap"
)

// Favorite is a product remembered by the shopper.
type Favorite struct {
	ProductID uint   `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url,omitempty"`
	Stock     int    `json:"stock"`
}

// ToggleFavorite removes productID from favorites, or adds it from the catalog
// snapshot. added reports which happened.
func (e *Engine) ToggleFavorite(ctx context.Context, s *Session, productID uint) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.favorites {
		if f.ProductID == productID {
			s.favorites = append(s.favorites[:i:i], s.favorites[i+1:]...)
			e.saveFavorites(ctx, s)
			e.notify(s, NoticeInfo, "Removed from favorites")
			return false, nil
		}
	}

	p, ok := e.catalog.Find(productID)
	if !ok {
		e.notify(s, NoticeError, userMessage(ErrProductNotFound))
		return false, ErrProductNotFound
	}
	s.favorites = append(s.favorites, Favorite{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Stock:     p.Stock,
	})
	e.saveFavorites(ctx, s)
	e.notify(s, NoticeSuccess, "Added to favorites")
	return true, nil
}

// Favorites returns a copy of the session's favorites.
func (e *Engine) Favorites(s *Session) []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

func (e *Engine) saveFavorites(ctx context.Context, s *Session) {
	if err := e.sessions.saveFavorites(ctx, s); err != nil {
		e.logger.Error("Failed to save favorites", zap.String("session", s.ID), zap.Error(err))
	}
}
