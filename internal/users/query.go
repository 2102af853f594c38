package users

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/seejay/userbase-be/internal/models"
	"github.com/seejay/userbase-be/internal/models/dto"
	"github.com/seejay/userbase-be/internal/storage"
)

var (
	// ErrInvalidQueryRequest indicates a page parameter without a limit.
	ErrInvalidQueryRequest = errors.New("'page' cannot be used without 'limit'")

	// ErrNonPositiveInput indicates a zero or negative limit or page.
	ErrNonPositiveInput = errors.New("limit and page must be positive")

	// ErrOutOfBound indicates a page starting beyond the result set.
	ErrOutOfBound = errors.New("requested page is beyond the result set")
)

// QueryParams carries the optional filters and pagination inputs of an
// account query. Nil Limit or Page means the parameter was not supplied.
type QueryParams struct {
	Username string
	Email    string
	Limit    *int
	Page     *int
}

// Query filters accounts by case-sensitive substring containment, sorts them
// by id ascending for stable pagination, and slices out the requested page.
func (s *Service) Query(ctx context.Context, params QueryParams) (dto.QueryPage, error) {
	accounts, err := s.store.ListAll(ctx)
	if err != nil {
		return dto.QueryPage{}, err
	}

	var matched []models.Summary
	for _, account := range accounts {
		if params.Username != "" && !strings.Contains(account.Username, params.Username) {
			continue
		}
		if params.Email != "" && !strings.Contains(account.Email, params.Email) {
			continue
		}
		matched = append(matched, models.Summary{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
		})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if total == 0 {
		return dto.QueryPage{}, storage.ErrNotFound
	}
	if params.Limit == nil && params.Page != nil {
		return dto.QueryPage{}, ErrInvalidQueryRequest
	}

	limit, page := total, 1
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Page != nil {
		page = *params.Page
	}
	if limit <= 0 || page <= 0 {
		return dto.QueryPage{}, ErrNonPositiveInput
	}

	// overflow-safe form of (page-1)*limit >= total
	if page-1 > (total-1)/limit {
		return dto.QueryPage{}, ErrOutOfBound
	}
	start := (page - 1) * limit
	end := min(start+limit, total)

	return dto.QueryPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Items: matched[start:end],
	}, nil
}
