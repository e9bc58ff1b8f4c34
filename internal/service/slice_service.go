package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/slice-of-life/backend/internal/database"
	"github.com/slice-of-life/backend/internal/domain"
)

// DefaultPageSize is used when a feed request does not name a limit.
const DefaultPageSize = 20

type SliceService struct {
	db    DB
	space ShareSpace
}

func NewSliceService(db DB, space ShareSpace) *SliceService {
	return &SliceService{db: db, space: space}
}

// Slice is a fully hydrated post: foreign keys resolved into records, the
// author redacted, the image key swapped for a shareable URL.
type Slice struct {
	PostID    int         `json:"post_id"`
	FreeText  *string     `json:"free_text"`
	Image     string      `json:"image"`
	CreatedAt time.Time   `json:"created_at"`
	PostedBy  domain.User `json:"posted_by"`
	Completes domain.Task `json:"completes"`
}

// SlicePage is one page of the feed plus the link to the next one.
type SlicePage struct {
	Page []Slice `json:"page"`
	Next string  `json:"next"`
}

// Thread is a comment with its responses nested under it.
type Thread struct {
	CommentID int         `json:"comment_id"`
	CreatedAt time.Time   `json:"created_at"`
	FreeText  string      `json:"free_text"`
	CommentBy domain.User `json:"comment_by"`
	Responses []*Thread   `json:"responses"`
}

// ReactionGroup reports one distinct emoji on a post: how often it was used
// and by whom.
type ReactionGroup struct {
	Reaction string   `json:"reaction"`
	Count    int64    `json:"count"`
	Reactors []string `json:"reactors"`
}

type NewSliceInput struct {
	Handle   string
	FreeText string
	TaskID   int
	FileName string
	Image    io.Reader
	Size     int64
}

// LatestSlices returns one page of the feed, newest first. The next link
// advances the offset by the page actually returned, so an empty page yields
// a link that is also empty rather than an error.
func (s *SliceService) LatestSlices(ctx context.Context, limit, offset int) (*SlicePage, error) {
	page := []Slice{}
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		posts, err := database.Collect[domain.Post](ctx, q, database.PaginatedPosts(limit, offset))
		if err != nil {
			return err
		}

		authors := map[string]domain.User{}
		tasks := map[int]domain.Task{}
		for _, p := range posts {
			slice, err := s.hydratePost(ctx, q, p, authors, tasks)
			if err != nil {
				return err
			}
			page = append(page, slice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SlicePage{
		Page: page,
		Next: fmt.Sprintf("/api/v1/slices/latest?limit=%d&offset=%d", limit, offset+len(page)),
	}, nil
}

// SliceByID returns one hydrated post, or NotFound.
func (s *SliceService) SliceByID(ctx context.Context, id int) (*Slice, error) {
	var slice Slice
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		post, err := requireOne[domain.Post](ctx, q, database.SpecificPost(id), "slice")
		if err != nil {
			return err
		}
		slice, err = s.hydratePost(ctx, q, post, map[string]domain.User{}, map[int]domain.Task{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &slice, nil
}

// CommentsForSlice assembles the post's comment tree: every comment is
// fetched once in thread order, grouped by parent in memory, and attached
// under its parent recursively. Ordering within a level follows creation
// time ascending.
func (s *SliceService) CommentsForSlice(ctx context.Context, id int) ([]*Thread, error) {
	threads := []*Thread{}
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		if _, err := requireOne[domain.Post](ctx, q, database.SpecificPost(id), "slice"); err != nil {
			return err
		}

		comments, err := database.Collect[domain.Comment](ctx, q, database.CommentsForPost(id))
		if err != nil {
			return err
		}

		var roots []domain.Comment
		responses := map[int][]domain.Comment{}
		for _, c := range comments {
			if c.Parent == nil {
				roots = append(roots, c)
			} else {
				responses[*c.Parent] = append(responses[*c.Parent], c)
			}
		}

		authors := map[string]domain.User{}
		var build func(c domain.Comment) (*Thread, error)
		build = func(c domain.Comment) (*Thread, error) {
			author, err := s.lookupAuthor(ctx, q, c.CommentBy, authors)
			if err != nil {
				return nil, err
			}
			t := &Thread{
				CommentID: c.CommentID,
				CreatedAt: c.CreatedAt,
				FreeText:  c.FreeText,
				CommentBy: author,
				Responses: []*Thread{},
			}
			for _, child := range responses[c.CommentID] {
				sub, err := build(child)
				if err != nil {
					return nil, err
				}
				t.Responses = append(t.Responses, sub)
			}
			return t, nil
		}

		for _, root := range roots {
			t, err := build(root)
			if err != nil {
				return err
			}
			threads = append(threads, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return threads, nil
}

// ReactionsForSlice aggregates the post's reactions per distinct emoji.
func (s *SliceService) ReactionsForSlice(ctx context.Context, id int) ([]ReactionGroup, error) {
	groups := []ReactionGroup{}
	err := s.db.WithTransaction(ctx, func(q database.Querier) error {
		if _, err := requireOne[domain.Post](ctx, q, database.SpecificPost(id), "slice"); err != nil {
			return err
		}

		representatives, err := database.Collect[domain.Reaction](ctx, q, database.ReactionsByGroup(id))
		if err != nil {
			return err
		}

		for _, rep := range representatives {
			counts, err := database.CollectScalars[int64](ctx, q, database.ReactionCount(rep.Emoji, id))
			if err != nil {
				return err
			}
			var count int64
			if len(counts) > 0 {
				count = counts[0]
			}

			reactors, err := database.CollectScalars[string](ctx, q, database.ReactorsByEmoji(rep.Emoji, id))
			if err != nil {
				return err
			}

			groups = append(groups, ReactionGroup{
				Reaction: rep.Emoji,
				Count:    count,
				Reactors: reactors,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateSlice saves the image to the CDN, then inserts the post and the
// task completion inside one transaction so they land atomically.
func (s *SliceService) CreateSlice(ctx context.Context, input NewSliceInput) error {
	key := fmt.Sprintf("%s/%d/%s%s", input.Handle, input.TaskID, uuid.NewString(), path.Ext(input.FileName))
	if err := s.space.SaveFile(ctx, key, input.Image, input.Size); err != nil {
		return err
	}

	var freeText *string
	if input.FreeText != "" {
		freeText = &input.FreeText
	}
	post := domain.Post{
		FreeText:  freeText,
		Image:     key,
		CreatedAt: time.Now(),
		PostedBy:  input.Handle,
		Completes: input.TaskID,
	}

	return s.db.WithTransaction(ctx, func(q database.Querier) error {
		if err := database.Exec(ctx, q, database.InsertPost(post)); err != nil {
			return err
		}
		return database.Exec(ctx, q, database.InsertCompletion(domain.Completion{
			CompletedBy:   input.Handle,
			CompletedTask: input.TaskID,
		}))
	})
}

func (s *SliceService) hydratePost(ctx context.Context, q database.Querier, post domain.Post, authors map[string]domain.User, tasks map[int]domain.Task) (Slice, error) {
	author, err := s.lookupAuthor(ctx, q, post.PostedBy, authors)
	if err != nil {
		return Slice{}, err
	}

	task, ok := tasks[post.Completes]
	if !ok {
		task, err = requireOne[domain.Task](ctx, q, database.SpecificTask(post.Completes), "task")
		if err != nil {
			return Slice{}, err
		}
		tasks[post.Completes] = task
	}

	shareURL, err := s.space.GetShareLink(ctx, post.Image)
	if err != nil {
		return Slice{}, err
	}

	return Slice{
		PostID:    post.PostID,
		FreeText:  post.FreeText,
		Image:     shareURL,
		CreatedAt: post.CreatedAt,
		PostedBy:  author,
		Completes: task,
	}, nil
}

// lookupAuthor resolves a handle to a redacted user, caching per assembly so
// repeated authors cost one lookup.
func (s *SliceService) lookupAuthor(ctx context.Context, q database.Querier, handle string, cache map[string]domain.User) (domain.User, error) {
	if author, ok := cache[handle]; ok {
		return author, nil
	}
	author, err := requireOne[domain.User](ctx, q, database.SpecificUser(handle), "user")
	if err != nil {
		return domain.User{}, err
	}
	redacted := author.Redacted()
	cache[handle] = redacted
	return redacted, nil
}
