package database

import (
	"github.com/slice-of-life/backend/internal/domain"
)

// Query templates. Each function is pure: it binds domain arguments into a
// PreparedStatement and performs no I/O. Column lists are spelled out so that
// templates and the db tags on domain records stay matched by name.

const (
	postColumns     = "post_id, free_text, image, created_at, posted_by, completes"
	userColumns     = "handle, password_hash, email, salt, first_name, last_name, profile_pic"
	taskColumns     = "task_id, title, description, active"
	commentColumns  = "comment_id, created_at, free_text, parent, comment_by, comment_on"
	reactionColumns = "reaction_id, emoji, reacted_by, reacted_to"
)

// PaginatedPosts selects the most recent posts, newest first.
func PaginatedPosts(limit, offset int) PreparedStatement {
	return NewStatement(`
		SELECT `+postColumns+`
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
}

// SpecificUser selects a user by handle. Zero or one row expected.
func SpecificUser(handle string) PreparedStatement {
	return NewStatement(`
		SELECT `+userColumns+`
		FROM users
		WHERE handle = $1`,
		handle)
}

// SpecificTask selects a task by id. Zero or one row expected.
func SpecificTask(taskID int) PreparedStatement {
	return NewStatement(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE task_id = $1`,
		taskID)
}

// SpecificPost selects a post by id. Zero or one row expected.
func SpecificPost(postID int) PreparedStatement {
	return NewStatement(`
		SELECT `+postColumns+`
		FROM posts
		WHERE post_id = $1`,
		postID)
}

// CommentsForPost selects every comment on a post in canonical thread order
// (oldest first). The tree is assembled in memory from this one result set.
func CommentsForPost(postID int) PreparedStatement {
	return NewStatement(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE comment_on = $1
		ORDER BY created_at ASC`,
		postID)
}

// TopLevelComments selects the parentless comments on a post, oldest first.
func TopLevelComments(postID int) PreparedStatement {
	return NewStatement(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE comment_on = $1
		AND parent IS NULL
		ORDER BY created_at ASC`,
		postID)
}

// CommentsRespondingTo selects the direct responses to one comment on a post,
// oldest first.
func CommentsRespondingTo(postID, parentCommentID int) PreparedStatement {
	return NewStatement(`
		SELECT `+commentColumns+`
		FROM comments
		WHERE comment_on = $1
		AND parent = $2
		ORDER BY created_at ASC`,
		postID, parentCommentID)
}

// ReactionsByGroup selects one representative reaction row per distinct emoji
// used on a post. The lowest reaction id wins, so the pick is deterministic.
func ReactionsByGroup(postID int) PreparedStatement {
	return NewStatement(`
		SELECT DISTINCT ON (emoji) `+reactionColumns+`
		FROM reactions
		WHERE reacted_to = $1
		ORDER BY emoji, reaction_id ASC`,
		postID)
}

// ReactionCount counts occurrences of one emoji on one post.
func ReactionCount(emojiCode string, postID int) PreparedStatement {
	return NewStatement(`
		SELECT COUNT(*)
		FROM reactions
		WHERE reacted_to = $1
		AND emoji = $2`,
		postID, emojiCode)
}

// ReactorsByEmoji gathers the handles that used one emoji on one post.
func ReactorsByEmoji(emojiCode string, postID int) PreparedStatement {
	return NewStatement(`
		SELECT reacted_by
		FROM reactions
		WHERE reacted_to = $1
		AND emoji = $2`,
		postID, emojiCode)
}

// InsertUser inserts a new user account row.
func InsertUser(newUser domain.User) PreparedStatement {
	return NewStatement(`
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		newUser.Handle, newUser.PasswordHash, newUser.Email, newUser.Salt,
		newUser.FirstName, newUser.LastName, newUser.ProfilePic)
}

// InsertPost inserts a new post row, leaving the primary key to the server.
func InsertPost(newPost domain.Post) PreparedStatement {
	return NewStatement(`
		INSERT INTO posts (free_text, image, created_at, posted_by, completes)
		VALUES ($1, $2, $3, $4, $5)`,
		newPost.FreeText, newPost.Image, newPost.CreatedAt, newPost.PostedBy, newPost.Completes)
}

// InsertCompletion marks a task completed by a user.
func InsertCompletion(newCompletion domain.Completion) PreparedStatement {
	return NewStatement(`
		INSERT INTO completes (completed_by, completed_task)
		VALUES ($1, $2)`,
		newCompletion.CompletedBy, newCompletion.CompletedTask)
}

// AvailableTasks selects the tasks a user has not yet completed.
func AvailableTasks(handle string) PreparedStatement {
	return NewStatement(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE task_id NOT IN (
			SELECT completed_task
			FROM completes
			WHERE completed_by = $1
		)`,
		handle)
}

// CompletedTasks selects the tasks a user has completed.
func CompletedTasks(handle string) PreparedStatement {
	return NewStatement(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE task_id IN (
			SELECT completed_task
			FROM completes
			WHERE completed_by = $1
		)`,
		handle)
}
