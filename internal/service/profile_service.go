package service

import (
	"context"

	"github.com/slice-of-life/backend/internal/database"
	"github.com/slice-of-life/backend/internal/domain"
)

type ProfileService struct {
	db    DB
	space ShareSpace
}

func NewProfileService(db DB, space ShareSpace) *ProfileService {
	return &ProfileService{db: db, space: space}
}

// Tasklist partitions the task catalog for one user.
type Tasklist struct {
	Completed []domain.Task `json:"completed"`
	Available []domain.Task `json:"available"`
}

// Profile returns the user's own record, redacted for serialization, with the
// avatar key resolved to a shareable URL. Authorization (token subject must
// match the handle) happens at the transport boundary before any query.
func (s *ProfileService) Profile(ctx context.Context, handle string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		found, err := requireOne[domain.User](ctx, q, database.SpecificUser(handle), "user")
		if err != nil {
			return err
		}
		user = found.Redacted()

		avatarURL, err := s.space.GetShareLink(ctx, found.ProfilePic)
		if err != nil {
			return err
		}
		user.ProfilePic = avatarURL
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TasklistFor splits all tasks into those the user has completed and those
// still open to them. Both sides come from the same transaction so the
// partition is consistent.
func (s *ProfileService) TasklistFor(ctx context.Context, handle string) (*Tasklist, error) {
	list := &Tasklist{Completed: []domain.Task{}, Available: []domain.Task{}}
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		completed, err := database.Collect[domain.Task](ctx, q, database.CompletedTasks(handle))
		if err != nil {
			return err
		}
		available, err := database.Collect[domain.Task](ctx, q, database.AvailableTasks(handle))
		if err != nil {
			return err
		}
		list.Completed = append(list.Completed, completed...)
		list.Available = append(list.Available, available...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
